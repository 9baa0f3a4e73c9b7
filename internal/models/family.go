package models

import "time"

// Family is a registered evacuee household.
type Family struct {
	ID                       int64     `db:"id" json:"family_id"`
	HeadOfFamily             *string   `db:"head_of_family" json:"head_of_family,omitempty"`
	Seniors                  *int      `db:"seniors" json:"seniors,omitempty" validate:"omitempty,min=0"`
	PWD                      *int      `db:"pwd" json:"pwd,omitempty" validate:"omitempty,min=0"`
	Children                 *int      `db:"children" json:"children,omitempty" validate:"omitempty,min=0"`
	TotalMembers             *int      `db:"total_members" json:"total_members,omitempty" validate:"omitempty,min=0"`
	EvacuationCenterAssigned *string   `db:"evacuation_center_assigned" json:"evacuation_center_assigned,omitempty"`
	Address                  *string   `db:"address" json:"address,omitempty"`
	ContactNumber            *string   `db:"contact_number" json:"contact_number,omitempty"`
	DisasterType             *string   `db:"disaster_type" json:"disaster_type,omitempty"`
	MappingID                *int64    `db:"mapping_id" json:"mapping_id,omitempty"` // site id, used for filtering only
	CreatedAt                time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time `db:"updated_at" json:"updated_at"`
}

// Zone is the label the family is grouped under on the dashboard.
func (f *Family) Zone() string {
	if f.EvacuationCenterAssigned == nil || *f.EvacuationCenterAssigned == "" {
		return ZoneUnassigned
	}
	return *f.EvacuationCenterAssigned
}

func (f *Family) Members() int {
	if f.TotalMembers == nil {
		return 0
	}
	return *f.TotalMembers
}
