package models

import "time"

// User represents a member account. A record is created on the first successful
// purchase verification and completed when the member sets a password.
type User struct {
	BaseModel
	Name  string `json:"name"`
	Email string `json:"email" gorm:"uniqueIndex;not null;size:255"`

	// PasswordHash is a bcrypt hash; empty exactly while HasPassword is false.
	// Never serialized to clients.
	PasswordHash string `json:"-" gorm:"size:255"`

	IsVerified  bool `json:"is_verified" gorm:"default:false"`
	HasPassword bool `json:"has_password" gorm:"default:false"`

	// HasGeneratedPlan and FirstAccess gate the onboarding flow: FirstAccess
	// stays true until a study plan has been generated once for this email.
	HasGeneratedPlan bool `json:"has_generated_plan" gorm:"default:false"`
	FirstAccess      bool `json:"first_access" gorm:"default:true"`

	// IsActive is cleared when a purchase is refunded or canceled.
	IsActive bool `json:"is_active" gorm:"default:true"`

	PasswordCreatedAt *time.Time `json:"password_created_at,omitempty"`
}
