// Package session models the multi-step login flow as explicit state plus pure
// transition functions, so it can be tested without any HTTP in the loop.
package session

import (
	"membership-api/internal/models"
)

// Step is the current position in the login flow.
type Step string

const (
	StepEmail            Step = "email_entry"
	StepPasswordCreation Step = "password_creation"
	StepPasswordEntry    Step = "password_entry"
	StepAuthenticated    Step = "authenticated"
)

// Flow is the login-flow state for one attempt.
type Flow struct {
	Step  Step
	Email string
}

// NewFlow starts a flow at email entry.
func NewFlow() Flow {
	return Flow{Step: StepEmail}
}

// NextAfterVerification decides where an email submission leads. A failed
// purchase check keeps the flow at email entry; a verified email without a
// stored record, or with a record that has no password yet, goes to password
// creation; a complete record goes to password entry.
func NextAfterVerification(purchaseFound bool, user *models.User) Step {
	if !purchaseFound {
		return StepEmail
	}
	if user == nil || !user.HasPassword {
		return StepPasswordCreation
	}
	return StepPasswordEntry
}

// SubmitEmail applies NextAfterVerification to the flow.
func (f Flow) SubmitEmail(email string, purchaseFound bool, user *models.User) Flow {
	next := NextAfterVerification(purchaseFound, user)
	if next == StepEmail {
		return Flow{Step: StepEmail}
	}
	return Flow{Step: next, Email: email}
}

// SubmitNewPassword transitions password creation to authenticated when the
// password was accepted and saved, otherwise stays put.
func (f Flow) SubmitNewPassword(saved bool) Flow {
	if f.Step != StepPasswordCreation || !saved {
		return f
	}
	return Flow{Step: StepAuthenticated, Email: f.Email}
}

// SubmitPassword transitions password entry to authenticated on a valid
// password; a wrong password keeps the flow at password entry.
func (f Flow) SubmitPassword(valid bool) Flow {
	if f.Step != StepPasswordEntry || !valid {
		return f
	}
	return Flow{Step: StepAuthenticated, Email: f.Email}
}

// Back returns to email entry, clearing any progress.
func (f Flow) Back() Flow {
	return Flow{Step: StepEmail}
}
