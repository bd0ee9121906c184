package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageEntry represents a row in the database. ID preserves insertion order
// for Key and Keys.
type StorageEntry struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Namespace string `gorm:"uniqueIndex:idx_namespace_key;size:191;not null"`
	Key       string `gorm:"uniqueIndex:idx_namespace_key;size:191;not null"`
	Value     string `gorm:"not null"`
}

type DatabaseStore struct {
	db        *gorm.DB
	namespace string
}

func NewDatabaseStore(dsn, namespace string) (*DatabaseStore, error) {
	return OpenDatabaseStore(postgres.Open(dsn), namespace)
}

// OpenDatabaseStore connects through any GORM dialector and migrates the
// entry table.
func OpenDatabaseStore(dialector gorm.Dialector, namespace string) (*DatabaseStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-create table if needed
	if err := db.AutoMigrate(&StorageEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if namespace == "" {
		namespace = "default"
	}
	return &DatabaseStore{db: db, namespace: namespace}, nil
}

func (ds *DatabaseStore) scope() *gorm.DB {
	return ds.db.Model(&StorageEntry{}).Where("namespace = ?", ds.namespace)
}

func (ds *DatabaseStore) Get(key string) (string, bool, error) {
	var entry StorageEntry

	result := ds.scope().Where("key = ?", key).First(&entry)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if result.Error != nil {
		return "", false, result.Error
	}

	return entry.Value, true, nil
}

// Set upserts the entry. An overwritten key keeps its original position.
func (ds *DatabaseStore) Set(key, value string) error {
	entry := StorageEntry{
		Namespace: ds.namespace,
		Key:       key,
		Value:     value,
	}

	return ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
}

func (ds *DatabaseStore) Delete(key string) error {
	return ds.db.Delete(&StorageEntry{}, "namespace = ? AND key = ?", ds.namespace, key).Error
}

func (ds *DatabaseStore) Clear() error {
	return ds.db.Delete(&StorageEntry{}, "namespace = ?", ds.namespace).Error
}

func (ds *DatabaseStore) Key(index int) (string, bool, error) {
	if index < 0 {
		return "", false, nil
	}

	var keys []string
	err := ds.scope().Order("id").Offset(index).Limit(1).Pluck("key", &keys).Error
	if err != nil {
		return "", false, err
	}
	if len(keys) == 0 {
		return "", false, nil
	}
	return keys[0], true, nil
}

func (ds *DatabaseStore) Keys() ([]string, error) {
	keys := []string{}
	if err := ds.scope().Order("id").Pluck("key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (ds *DatabaseStore) Len() (int, error) {
	var count int64
	if err := ds.scope().Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// Close closes the database connection
func (ds *DatabaseStore) Close() error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
