package domain

import "time"

// Principal is an authenticated identity issued by the identity gateway.
// The ID is opaque and stable for the lifetime of the account.
type Principal struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// Profile is the application-level record for a principal, stored one-to-one
// by principal id. Role holds only "user" or "writer"; admin status is the
// separate IsAdmin flag, provisioned out-of-band, and dominates Role for all
// permission checks.
type Profile struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	DisplayName string    `json:"display_name" bson:"display_name"`
	Email       string    `json:"email" bson:"email"`
	Role        string    `json:"role" bson:"role"`
	IsAdmin     bool      `json:"is_admin" bson:"is_admin"`
	Bio         string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Province    string    `json:"province,omitempty" bson:"province,omitempty"`
	Country     string    `json:"country,omitempty" bson:"country,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	FirstLogin  bool      `json:"first_login" bson:"first_login"`
	CreatedBy   string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
