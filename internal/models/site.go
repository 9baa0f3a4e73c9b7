package models

import "time"

// Site is an evacuation center placed on the map.
type Site struct {
	ID         int64     `db:"id" json:"id"`
	Latitude   float64   `db:"latitude" json:"latitude" validate:"latitude"`
	Longitude  float64   `db:"longitude" json:"longitude" validate:"longitude"`
	Name       *string   `db:"name" json:"name,omitempty"`
	Type       *string   `db:"type" json:"type,omitempty"`
	Capacity   *int      `db:"capacity" json:"capacity,omitempty" validate:"omitempty,min=0"`
	Facilities *string   `db:"facilities" json:"facilities,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (s *Site) Coordinates() Coordinates {
	return Coordinates{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
	}
}

// SiteDetails holds the mutable fields of a site. Coordinates are only
// moved when both Latitude and Longitude are supplied.
type SiteDetails struct {
	Name       *string  `json:"name"`
	Type       *string  `json:"type"`
	Capacity   *int     `json:"capacity" validate:"omitempty,min=0"`
	Facilities *string  `json:"facilities"`
	Latitude   *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude  *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}
