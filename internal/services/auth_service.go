package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/authorizerdev/authorizer-go"
	"github.com/wbooks/notes-api/internal/config"
	"github.com/wbooks/notes-api/internal/messages"
	"github.com/wbooks/notes-api/internal/models"
	"github.com/wbooks/notes-api/internal/types"
	"github.com/wbooks/notes-api/internal/utils"
	"gorm.io/gorm"
)

var (
	authClient *authorizer.AuthorizerClient
	authOnce   sync.Once
)

// IsAuthorizerInitialized returns true if the Authorizer client is initialized
func IsAuthorizerInitialized() bool {
	return authClient != nil
}

// InitAuthorizer initializes the Authorizer client (singleton pattern)
func InitAuthorizer(cfg *config.Config, requestProtocol, requestHost string) error {
	var initErr error

	authOnce.Do(func() {
		// Ping the Authorizer service first
		if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
			initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
		log.Printf("Initializing Authorizer: authorizerURL=%s, clientID=%s, redirectURL=%s",
			cfg.AuthzURL, cfg.AuthzClientID, redirectURL)

		var err error
		authClient, err = authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
		if err != nil {
			initErr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
	})

	return initErr
}

// ValidateSession validates a session cookie for the given roles and returns
// the authenticated identity.
func ValidateSession(cookie string, roles []string) (*authorizer.User, error) {
	if authClient == nil {
		return nil, fmt.Errorf("authorizer client not initialized")
	}

	// Convert roles to []*string
	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	res, err := authClient.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  rolesPtrs,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}

	if res == nil || !res.IsValid || res.User == nil {
		return nil, fmt.Errorf("session is not valid")
	}

	return res.User, nil
}

// ResolveUser maps an authenticated identity email to the local account, with
// the owning utility preloaded so tenant policy is available downstream. An
// identity without a local account is treated as unauthenticated.
func ResolveUser(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Preload("Utility").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.CustomError{
				Code:    http.StatusUnauthorized,
				Message: messages.Get(messages.Unauthorized),
				Type:    "notes.authentication",
			}
		}
		return nil, err
	}

	return &user, nil
}
