package database

import (
	"strings"
	"time"

	"membership-api/internal/models"

	"gorm.io/gorm"
)

// GetUserByEmail fetches a user record by email (case-insensitive). Returns
// gorm.ErrRecordNotFound when no record exists.
func GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := DB.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user record.
func CreateUser(user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	return DB.Create(user).Error
}

// SaveUser persists all fields of an existing user record.
func SaveUser(user *models.User) error {
	return DB.Save(user).Error
}

// SetUserPassword stores the bcrypt hash and flips the password flags in one
// update, keeping the hasPassword/credential invariant.
func SetUserPassword(email, passwordHash string) error {
	now := time.Now()
	return DB.Model(&models.User{}).
		Where("email = ?", strings.ToLower(email)).
		Updates(map[string]interface{}{
			"password_hash":       passwordHash,
			"has_password":        true,
			"password_created_at": &now,
		}).Error
}

// MarkPlanGenerated records that a study plan has been generated for the user.
// FirstAccess is cleared at the same time; it never becomes true again for this
// email (see the completion marker in content.go).
func MarkPlanGenerated(email string) error {
	return DB.Model(&models.User{}).
		Where("email = ?", strings.ToLower(email)).
		Updates(map[string]interface{}{
			"has_generated_plan": true,
			"first_access":       false,
		}).Error
}

// DeactivateUser disables access for the given email, used on refunds and
// cancellations. Missing users are not an error.
func DeactivateUser(email string) error {
	err := DB.Model(&models.User{}).
		Where("email = ?", strings.ToLower(email)).
		Update("is_active", false).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	return err
}
