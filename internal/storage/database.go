package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skycast/internal/forecast"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(path string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(&LocationRecord{}, &ReportSnapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{db: db}, nil
}

// SaveLastLocation overwrites the single last-city record.
func (d *Database) SaveLastLocation(loc forecast.LocationSelection) error {
	var record LocationRecord
	err := d.db.Where("key = ?", lastCityKey).First(&record).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	record.Key = lastCityKey
	record.Name = loc.Name
	record.Country = loc.Country
	record.Latitude = loc.Latitude
	record.Longitude = loc.Longitude
	return d.db.Save(&record).Error
}

// LoadLastLocation returns the persisted selection, or nil when no city has
// been selected yet. A first run with no record is not an error.
func (d *Database) LoadLastLocation() (*forecast.LocationSelection, error) {
	var record LocationRecord
	err := d.db.Where("key = ?", lastCityKey).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &forecast.LocationSelection{
		Name:      record.Name,
		Country:   record.Country,
		Latitude:  record.Latitude,
		Longitude: record.Longitude,
	}, nil
}

// ClearLastLocation removes the persisted selection.
func (d *Database) ClearLastLocation() error {
	return d.db.Unscoped().Where("key = ?", lastCityKey).Delete(&LocationRecord{}).Error
}

// SaveReport archives a report for its location.
func (d *Database) SaveReport(r *forecast.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	snapshot := &ReportSnapshot{
		FetchedAt: r.GeneratedAt,
		Name:      r.Location.Name,
		Country:   r.Location.Country,
		Latitude:  r.Location.Latitude,
		Longitude: r.Location.Longitude,
		Report:    payload,
	}
	return d.db.Create(snapshot).Error
}

// LatestReport returns the most recently archived report, or nil when none
// has been stored yet.
func (d *Database) LatestReport() (*forecast.Report, error) {
	var snapshot ReportSnapshot
	err := d.db.Order("fetched_at desc").First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var report forecast.Report
	if err := json.Unmarshal(snapshot.Report, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

// CleanOldSnapshots drops archived reports older than the cutoff.
func (d *Database) CleanOldSnapshots(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	return d.db.Where("fetched_at < ?", cutoff).Delete(&ReportSnapshot{}).Error
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
