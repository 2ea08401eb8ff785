// Package entity defines the portfolio project domain type.
package entity

import "time"

// Project is one portfolio entry owned by a user.
type Project struct {
	ID            uint
	UserID        uint
	Name          string
	Description   string
	RepositoryURL string
	DemoURL       string
	Image         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OwnedBy reports whether userID owns the project.
func (p *Project) OwnedBy(userID uint) bool {
	return p != nil && p.UserID == userID
}
