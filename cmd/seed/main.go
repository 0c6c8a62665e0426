// main.go
//
// Multi-tenant notes/books cataloging service for the wbooks platform.

// Seeds the database with the North and South utilities, a test user per
// utility, and notes of assorted sizes around the tier boundaries.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/wbooks/notes-api/internal/config"
	"github.com/wbooks/notes-api/internal/database"
	"github.com/wbooks/notes-api/internal/models"
	"github.com/wbooks/notes-api/internal/types"
	"gorm.io/gorm"
)

func main() {
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	if envFilename != "" {
		log.Printf("Loading environment variables from %s", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("Database seeded")
}

func seed(db *gorm.DB) error {
	north := models.Utility{
		Name:                 "North Utility",
		Code:                 models.UtilityCodeNorth,
		MaxWordShortContent:  50,
		MaxWordMediumContent: 100,
		MaxWordValidReview:   50,
	}
	if err := db.Where("code = ?", north.Code).FirstOrCreate(&north).Error; err != nil {
		return err
	}

	south := models.Utility{
		Name:                 "South Utility",
		Code:                 models.UtilityCodeSouth,
		MaxWordShortContent:  60,
		MaxWordMediumContent: 120,
		MaxWordValidReview:   100,
	}
	if err := db.Where("code = ?", south.Code).FirstOrCreate(&south).Error; err != nil {
		return err
	}

	northUser, err := seedUser(db, &north, "test_north@wbooks.example")
	if err != nil {
		return err
	}
	southUser, err := seedUser(db, &south, "test_south@wbooks.example")
	if err != nil {
		return err
	}

	// Notes of varied sizes, including the tier boundary cases. Review sizes
	// stay within each utility's review word limit.
	cases := []struct {
		user     *models.User
		noteType types.NoteType
		words    int
	}{
		{northUser, types.NoteTypeReview, 5},
		{northUser, types.NoteTypeCritique, 5},
		{northUser, types.NoteTypeCritique, 50},
		{northUser, types.NoteTypeCritique, 54},
		{northUser, types.NoteTypeCritique, 67},
		{northUser, types.NoteTypeCritique, 100},
		{northUser, types.NoteTypeCritique, 110},
		{northUser, types.NoteTypeCritique, 130},
		{southUser, types.NoteTypeReview, 5},
		{southUser, types.NoteTypeReview, 54},
		{southUser, types.NoteTypeCritique, 60},
		{southUser, types.NoteTypeCritique, 67},
		{southUser, types.NoteTypeCritique, 110},
		{southUser, types.NoteTypeCritique, 120},
		{southUser, types.NoteTypeCritique, 130},
	}

	for _, tc := range cases {
		note := models.Note{
			Title:    fmt.Sprintf("%d-word %s", tc.words, tc.noteType),
			Content:  strings.TrimSpace(strings.Repeat("word ", tc.words)),
			NoteType: tc.noteType,
			UserID:   tc.user.ID,
		}
		if err := db.Create(&note).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedUser(db *gorm.DB, u *models.Utility, email string) (*models.User, error) {
	user := models.User{
		ExternalID: uuid.NewString(),
		Email:      email,
		FirstName:  "Test",
		LastName:   "User",
		UtilityID:  u.ID,
	}
	if err := db.Where("email = ?", email).FirstOrCreate(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
