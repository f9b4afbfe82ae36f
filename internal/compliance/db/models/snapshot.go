// Package models contains the persistence models for the snapshot storage,
// configured to work using GORM as the ORM.
package models

import (
	"time"
)

// Snapshot is one serialized CompanyState stored under a well-known key.
type Snapshot struct {
	// Name is the storage key, e.g. companyData.
	Name      string `gorm:"primaryKey;size:64"`
	Payload   []byte
	Version   int
	UpdatedAt time.Time
}

// TableName pins the table name regardless of naming strategy.
func (Snapshot) TableName() string {
	return "snapshots"
}
