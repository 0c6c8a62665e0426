package types

// NoteType is the closed set of note kinds accepted by the service.
type NoteType string

const (
	NoteTypeReview   NoteType = "review"
	NoteTypeCritique NoteType = "critique"
)

// Valid reports whether the value is a member of the note type enum.
// Partner feeds can produce an empty NoteType for unrecognized tokens;
// that value is never valid.
func (nt NoteType) Valid() bool {
	return nt == NoteTypeReview || nt == NoteTypeCritique
}

func (nt NoteType) String() string {
	return string(nt)
}
