package services

import (
	"fmt"
	"strings"

	"membership-api/internal/database"
	"membership-api/internal/models"
	"membership-api/pkg/logging"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages member accounts.
type UserService struct{}

// NewUserService creates a new user service
func NewUserService() *UserService {
	return &UserService{}
}

// GetUser returns the stored record for email, or nil when none exists.
func (s *UserService) GetUser(email string) (*models.User, error) {
	user, err := database.GetUserByEmail(email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// EnsureVerifiedUser creates or refreshes the user record after a successful
// purchase check. FirstAccess stays false for emails that already generated a
// plan once, tracked by the completion marker.
func (s *UserService) EnsureVerifiedUser(email string) (*models.User, error) {
	email = strings.ToLower(email)

	completed, err := database.HasItem(database.CompletionKey(email))
	if err != nil {
		return nil, fmt.Errorf("failed to read completion marker: %w", err)
	}

	user, err := s.GetUser(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &models.User{
			Name:        nameFromEmail(email),
			Email:       email,
			IsVerified:  true,
			IsActive:    true,
			FirstAccess: !completed,
		}
		if err := database.CreateUser(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}

	user.IsVerified = true
	if completed {
		user.FirstAccess = false
	}
	if err := database.SaveUser(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// CreatePassword hashes and stores the password for an existing verified user,
// flipping HasPassword. The caller validates the password rules first.
func (s *UserService) CreatePassword(email, password, name string) (*models.User, error) {
	email = strings.ToLower(email)

	user, err := s.GetUser(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("no verified user record for %s", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := database.SetUserPassword(email, string(hash)); err != nil {
		return nil, fmt.Errorf("failed to store password: %w", err)
	}

	if name != "" && name != user.Name {
		user.Name = name
		if err := database.SaveUser(user); err != nil {
			logging.Errorf("failed to update name for %s: %v", email, err)
		}
	}

	// Welcome email is best effort
	go NewBrevoService().SendWelcomeEmail(email, user.Name)

	return s.GetUser(email)
}

// ValidateLogin checks a password against the stored hash. Allowlisted test
// emails accept any password of six or more characters, matching the demo
// behavior of the front end.
func (s *UserService) ValidateLogin(email, password string) (bool, error) {
	if IsAllowlisted(email) && len(password) >= 6 {
		return true, nil
	}

	user, err := s.GetUser(email)
	if err != nil {
		return false, err
	}
	if user == nil || !user.HasPassword || !user.IsActive {
		return false, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

// MarkPlanGenerated flips the plan flags and writes the per-email completion
// marker so later logins skip first-access gating.
func (s *UserService) MarkPlanGenerated(email string) error {
	email = strings.ToLower(email)
	if err := database.MarkPlanGenerated(email); err != nil {
		return fmt.Errorf("failed to mark plan generated: %w", err)
	}
	if err := database.SetItem(database.CompletionKey(email), "true"); err != nil {
		return fmt.Errorf("failed to write completion marker: %w", err)
	}
	return nil
}

// Deactivate revokes access for the email and marks its purchases with the
// given terminal status.
func (s *UserService) Deactivate(email, purchaseStatus string) error {
	email = strings.ToLower(email)
	if err := database.DeactivateUser(email); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if purchaseStatus != "" {
		if err := database.MarkPurchasesRevoked(email, purchaseStatus); err != nil {
			return fmt.Errorf("failed to update purchases: %w", err)
		}
	}
	logging.Infof("access deactivated for %s", email)
	return nil
}

// nameFromEmail derives a placeholder display name until the member sets one.
func nameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
