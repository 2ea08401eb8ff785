// Package entity defines the portfolio profile view of a user.
package entity

// Profile is the editable, publicly shown part of a user account.
type Profile struct {
	ID            uint
	Name          string
	Email         string
	JobTitle      string
	Bio           string
	ProfileImage  string
	EmailVerified bool
}

// Update carries a partial profile change. Empty fields keep their value.
type Update struct {
	Name         string
	JobTitle     string
	Bio          string
	ProfileImage string
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Name == "" && u.JobTitle == "" && u.Bio == "" && u.ProfileImage == ""
}
