package entity

import "time"

// CollectionEntry is one persisted JSON blob keyed by entity type.
type CollectionEntry struct {
	Key       string    `gorm:"column:name;primaryKey"`
	Value     string    `gorm:"column:value;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the CollectionEntry entity.
func (CollectionEntry) TableName() string {
	return "collections"
}
