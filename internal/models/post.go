package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author is the snapshot of whoever wrote a post, embedded in the document
// at creation time. Posts keep this copy forever; later profile edits do not
// rewrite history.
type Author struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	UserImage string `json:"userImage,omitempty" bson:"userImage,omitempty"`
	Title     string `json:"title,omitempty" bson:"title,omitempty"`
}

// Post represents a feed post stored in MongoDB
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Text      string             `json:"text" bson:"text"`
	ImageURL  string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	User      Author             `json:"user" bson:"user"`
	Likes     []string           `json:"likes" bson:"likes"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreatePostRequest defines the JSON request body for creating a post without
// an attachment. User stays raw because clients send it either as an object
// or as a JSON-encoded string.
type CreatePostRequest struct {
	Text      string          `json:"text" form:"text"`
	User      json.RawMessage `json:"user"`
	ProfileID uint            `json:"profileId" form:"profileId"`
}

// ToggleLikeRequest defines the request body for toggling a like on a post
type ToggleLikeRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// DefaultAuthor is used when a submission carries no usable author payload
func DefaultAuthor() Author {
	return Author{FirstName: "Guest", LastName: "Guest"}
}
