package models

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	ID string `json:"id" gorm:"primaryKey;size:191"`

	// External identity references. FirebaseUID is the current scheme,
	// GoogleID is kept for accounts created under the old sign-in flow.
	FirebaseUID *string `json:"-" gorm:"uniqueIndex;size:128"`
	GoogleID    *string `json:"-" gorm:"uniqueIndex;size:100"`

	FirstName     string    `json:"first_name" gorm:"size:150"`
	LastName      string    `json:"last_name" gorm:"size:150"`
	Handle        string    `json:"handle" gorm:"uniqueIndex;not null;size:50"`
	Email         string    `json:"email" gorm:"index;size:255"`
	ProfilePhoto  *string   `json:"profile_photo" gorm:"size:500"`
	EmailVerified bool      `json:"email_verified" gorm:"default:false"`
	IsAdmin       bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FullName returns "First Last", falling back to the handle when both
// name parts are empty.
func (u *User) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Handle
	}
	return full
}

// HandleFromEmail derives a base handle from the email local-part.
func HandleFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	handle := strings.ToLower(local)
	handle = strings.ReplaceAll(handle, " ", "_")
	handle = strings.ReplaceAll(handle, "-", "_")
	handle = strings.ReplaceAll(handle, "+", "_")
	return handle
}

// FallbackHandle builds a handle for users whose token carries no email.
func FallbackHandle(subjectID string) string {
	if len(subjectID) > 8 {
		subjectID = subjectID[:8]
	}
	return fmt.Sprintf("user_%s", strings.ToLower(subjectID))
}
