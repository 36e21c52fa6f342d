package models

import "gorm.io/gorm"

// Profile is a viewer profile stored in PostgreSQL. Posts never reference it
// by id; creating a post copies the fields into the post's Author snapshot.
type Profile struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	UserImage  string `json:"userImage,omitempty"`
	Title      string `json:"title,omitempty"`
}

// Author returns the post-embeddable snapshot of this profile
func (p *Profile) Author() Author {
	return Author{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		UserImage: p.UserImage,
		Title:     p.Title,
	}
}

// CreateProfileRequest defines the request body for creating a profile
type CreateProfileRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string `json:"lastName" validate:"required,min=1,max=50"`
	UserImage string `json:"userImage,omitempty" validate:"omitempty,url"`
	Title     string `json:"title,omitempty" validate:"omitempty,max=100"`
}

// UpdateProfileRequest defines the request body for updating a profile
type UpdateProfileRequest struct {
	FirstName string `json:"firstName,omitempty" validate:"omitempty,min=1,max=50"`
	LastName  string `json:"lastName,omitempty" validate:"omitempty,min=1,max=50"`
	UserImage string `json:"userImage,omitempty" validate:"omitempty,url"`
	Title     string `json:"title,omitempty" validate:"omitempty,max=100"`
}
