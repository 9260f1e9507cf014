package storage

import (
	"time"

	"gorm.io/gorm"
)

// lastCityKey identifies the single persisted location selection. At most
// one record carries it; each new selection overwrites the previous one.
const lastCityKey = "last_city"

// LocationRecord is the persisted "last selected city".
type LocationRecord struct {
	gorm.Model
	Key       string  `gorm:"uniqueIndex" json:"-"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ReportSnapshot archives a serialized report so a failed refresh can still
// serve the last good state.
type ReportSnapshot struct {
	gorm.Model
	FetchedAt time.Time `gorm:"index" json:"fetched_at"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Report    []byte    `json:"report"`
}
