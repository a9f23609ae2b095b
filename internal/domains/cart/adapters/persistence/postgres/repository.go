package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists inventory and cart entries in PostgreSQL using GORM.
// The schema is applied by the migrations package.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// inventoryRecord maps an inventory item to a relational row. Seq keeps catalog order.
type inventoryRecord struct {
	Seq     int64  `gorm:"primaryKey;autoIncrement;column:seq"`
	ID      string `gorm:"column:id;uniqueIndex;size:128"`
	Content string `gorm:"column:content"`
}

func (inventoryRecord) TableName() string { return "inventory_items" }

// cartItemRecord maps a cart entry to a relational row. Seq keeps insertion order.
type cartItemRecord struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement;column:seq"`
	ID        string    `gorm:"column:id;uniqueIndex;size:128"`
	Content   string    `gorm:"column:content"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartItemRecord) TableName() string { return "cart_items" }

func (r *Repository) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []inventoryRecord
	if err := r.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]domain.InventoryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, domain.InventoryItem{ID: rec.ID, Content: rec.Content})
	}
	return items, nil
}

// ReplaceInventory swaps the whole catalog in one transaction.
func (r *Repository) ReplaceInventory(ctx context.Context, items []domain.InventoryItem) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&inventoryRecord{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		records := make([]inventoryRecord, 0, len(items))
		for _, item := range items {
			records = append(records, inventoryRecord{ID: item.ID, Content: item.Content})
		}
		return tx.Create(&records).Error
	})
}

func (r *Repository) ListCart(ctx context.Context) ([]domain.CartItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []cartItemRecord
	if err := r.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]domain.CartItem, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toDomain())
	}
	return items, nil
}

func (r *Repository) AddCartItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	if err := r.ensureDB(); err != nil {
		return domain.CartItem{}, err
	}
	record := cartItemRecord{ID: item.ID, Content: item.Content, Quantity: item.Quantity}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&cartItemRecord{}).Where("id = ?", item.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ports.ErrConflict
		}
		return tx.Create(&record).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.CartItem{}, ports.ErrConflict
	}
	if err != nil {
		return domain.CartItem{}, err
	}
	return record.toDomain(), nil
}

func (r *Repository) UpdateCartItem(ctx context.Context, id string, quantity int) (domain.CartItem, error) {
	if err := r.ensureDB(); err != nil {
		return domain.CartItem{}, err
	}
	result := r.db.WithContext(ctx).Model(&cartItemRecord{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		return domain.CartItem{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.CartItem{}, ports.ErrNotFound
	}
	var record cartItemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CartItem{}, ports.ErrNotFound
		}
		return domain.CartItem{}, err
	}
	return record.toDomain(), nil
}

func (r *Repository) DeleteCartItem(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&cartItemRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres cart repository not configured")
	}
	return nil
}

func (r cartItemRecord) toDomain() domain.CartItem {
	return domain.CartItem{ID: r.ID, Content: r.Content, Quantity: r.Quantity}
}
