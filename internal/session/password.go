package session

import "unicode"

// PasswordChecks mirrors the per-rule feedback shown during password creation.
type PasswordChecks struct {
	Length    bool `json:"length"`
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Number    bool `json:"number"`
	Match     bool `json:"match"`
}

// OK reports whether every rule holds.
func (c PasswordChecks) OK() bool {
	return c.Length && c.Uppercase && c.Lowercase && c.Number && c.Match
}

// CheckPassword evaluates the password-creation rules: at least 8 characters,
// one uppercase, one lowercase, one digit, and a matching confirmation.
func CheckPassword(password, confirm string) PasswordChecks {
	checks := PasswordChecks{
		Length: len(password) >= 8,
		Match:  password != "" && password == confirm,
	}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			checks.Uppercase = true
		case unicode.IsLower(r):
			checks.Lowercase = true
		case unicode.IsDigit(r):
			checks.Number = true
		}
	}
	return checks
}
