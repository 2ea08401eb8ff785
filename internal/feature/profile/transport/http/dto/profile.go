// Package dto defines data transfer objects for the profile feature's HTTP transport layer.
package dto

import "devport_backend/internal/feature/profile/domain/entity"

// UpdateProfileReq represents the request body for PUT /user/profile.
type UpdateProfileReq struct {
	Name         string `json:"name" binding:"omitempty,max=255"`
	JobTitle     string `json:"jobTitle" binding:"omitempty,max=255"`
	Bio          string `json:"bio" binding:"omitempty,max=5000"`
	ProfileImage string `json:"profileImage" binding:"omitempty,url"`
}

// ProfileRes is the owner's own profile.
type ProfileRes struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	JobTitle      string `json:"jobTitle"`
	Bio           string `json:"bio"`
	ProfileImage  string `json:"profileImage"`
	EmailVerified bool   `json:"emailVerified"`
}

// PublicProfileRes is the profile shown on a public portfolio page.
type PublicProfileRes struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	JobTitle     string `json:"jobTitle"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profileImage"`
}

func NewProfileRes(p *entity.Profile) ProfileRes {
	return ProfileRes{
		ID:            p.ID,
		Name:          p.Name,
		Email:         p.Email,
		JobTitle:      p.JobTitle,
		Bio:           p.Bio,
		ProfileImage:  p.ProfileImage,
		EmailVerified: p.EmailVerified,
	}
}

func NewPublicProfileRes(p *entity.Profile) PublicProfileRes {
	return PublicProfileRes{
		ID:           p.ID,
		Name:         p.Name,
		JobTitle:     p.JobTitle,
		Bio:          p.Bio,
		ProfileImage: p.ProfileImage,
	}
}
