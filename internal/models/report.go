package models

import (
	"io"
	"time"
)

const (
	StatusMissing = "Missing"
	StatusFound   = "Found"
)

// Report is a missing-person report.
type Report struct {
	ID               int64     `db:"id" json:"id"`
	Name             string    `db:"name" json:"name" validate:"required"`
	Age              *int      `db:"age" json:"age,omitempty" validate:"omitempty,min=0"`
	DateMissing      time.Time `db:"date_missing" json:"date_missing"`
	Status           string    `db:"status" json:"status"`
	PhotoURL         *string   `db:"photo_url" json:"photo_url,omitempty"`
	Gender           *string   `db:"gender" json:"gender,omitempty"`
	LastSeenLocation *string   `db:"last_seen_location" json:"last_seen_location,omitempty"`
	Description      *string   `db:"description" json:"description,omitempty"`
	Address          *string   `db:"address" json:"address,omitempty"`
	ContactNumber    *string   `db:"contact_number" json:"contact_number,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

func (r *Report) HasPhoto() bool {
	return r.PhotoURL != nil && *r.PhotoURL != ""
}

// Photo is an uploaded image travelling with a create or update call.
// It is never persisted itself; only the reference it produces is.
type Photo struct {
	Name        string // original file name, only the base is kept
	ContentType string
	Data        io.Reader
}
