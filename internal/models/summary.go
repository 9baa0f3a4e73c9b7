package models

// ZoneUnassigned groups families without an evacuation center.
const ZoneUnassigned = "Unassigned"

type Summary struct {
	TotalSites          int            `json:"total_evacuation_centers"`
	TotalFamilies       int            `json:"total_evacuees"`
	TotalMissing        int            `json:"total_missing"`
	TotalUpcomingDrills int            `json:"total_upcoming_drills"`
	MissingCount        int            `json:"missing_count"`
	FoundCount          int            `json:"found_count"`
	FamiliesPerZone     map[string]int `json:"families_per_zone"`
	EvacuatedCount      int            `json:"evacuated_count"`
	SafeCount           int            `json:"safe_count"` // evacuated - missing, may be negative
}
