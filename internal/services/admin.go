package services

import "strings"

// adminEmails are the accounts allowed to edit site content and manage users.
var adminEmails = []string{
	"admin@teacherpoli.com",
	"suporte@teacherpoli.com",
	"manu@teacherpoli.com",
	"poli@teacherpoli.com",
}

// AdminPermissions is the full permission set. Every admin gets all of it;
// tiered roles never materialized.
var AdminPermissions = []string{
	"edit_content",
	"add_lessons",
	"manage_users",
	"edit_bonuses",
	"manage_settings",
}

// IsAdmin reports whether the email belongs to an administrator.
func IsAdmin(email string) bool {
	lower := strings.ToLower(email)
	for _, e := range adminEmails {
		if lower == e {
			return true
		}
	}
	return false
}

// GetAdminPermissions returns the permission set for the email, empty for
// non-admins.
func GetAdminPermissions(email string) []string {
	if !IsAdmin(email) {
		return nil
	}
	return AdminPermissions
}
