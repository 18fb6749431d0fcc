package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DurableValue is the key/value row backing the database store.
type DurableValue struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"type:text"`
}

// TableName keeps the table name stable across GORM naming strategies.
func (DurableValue) TableName() string {
	return "durable_values"
}

// DBStore persists keys as rows in a key/value table.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore migrates the key/value table and returns a store.
func NewDBStore(db *gorm.DB) (*DBStore, error) {
	if err := db.AutoMigrate(&DurableValue{}); err != nil {
		return nil, fmt.Errorf("failed to migrate durable_values: %w", err)
	}
	return &DBStore{db: db}, nil
}

// Load reads the row for key.
func (s *DBStore) Load(key string) ([]byte, bool, error) {
	var row DurableValue
	err := s.db.First(&row, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return []byte(row.Value), true, nil
}

// Save upserts the row for key.
func (s *DBStore) Save(key string, value []byte) error {
	row := DurableValue{Key: key, Value: string(value)}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Delete removes the row for key.
func (s *DBStore) Delete(key string) error {
	if err := s.db.Delete(&DurableValue{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
