package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the cart API schema.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&inventoryRecord{},
		&cartItemRecord{},
	)
}

// Inventory schema mirrors the cart Postgres adapter.
type inventoryRecord struct {
	Seq     int64  `gorm:"primaryKey;autoIncrement;column:seq"`
	ID      string `gorm:"column:id;uniqueIndex;size:128"`
	Content string `gorm:"column:content"`
}

func (inventoryRecord) TableName() string { return "inventory_items" }

// Cart entry schema mirrors the cart Postgres adapter.
type cartItemRecord struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement;column:seq"`
	ID        string    `gorm:"column:id;uniqueIndex;size:128"`
	Content   string    `gorm:"column:content"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartItemRecord) TableName() string { return "cart_items" }
