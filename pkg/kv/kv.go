// Package kv is the snapshot backend: one table mapping a collection
// key to its JSON blob. The same schema runs on an embedded SQLite file
// or on Postgres; the DSN picks the driver.
package kv

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Snapshot is one persisted collection.
type Snapshot struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Store reads and writes whole-collection snapshots.
type Store struct {
	db *gorm.DB
}

// Open connects and migrates the snapshots table. Postgres DSNs
// (postgres:// URLs or key=value form) use the postgres driver;
// anything else is treated as a SQLite file path.
func Open(dsn string) (*Store, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dial = postgres.Open(dsn)
	} else {
		dial = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Load unmarshals the snapshot for key into v. The false return means
// the key has never been saved.
func (s *Store) Load(key string, v any) (bool, error) {
	var snap Snapshot
	err := s.db.First(&snap, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(snap.Value, v); err != nil {
		return false, err
	}
	return true, nil
}

// Save upserts the snapshot for key with the JSON form of v.
func (s *Store) Save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	snap := Snapshot{Key: key, Value: raw, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&snap).Error
}
