package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/tiendamx/tienda-engine/internal/app/model"
	"github.com/tiendamx/tienda-engine/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartSlot is the single-row-per-slot payload table backing GormStore.
type cartSlot struct {
	Slot      string `gorm:"primarykey"`
	Payload   string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (cartSlot) TableName() string {
	return "cart_slots"
}

// GormStore keeps the cart slot as a JSON payload row in a relational
// database: postgres in production, in-memory sqlite in tests.
type GormStore struct {
	db   *gorm.DB
	slot string
}

func NewGormStore(db *gorm.DB, slot string) (*GormStore, error) {
	if slot == "" {
		slot = DefaultSlot
	}
	if err := db.AutoMigrate(&cartSlot{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db, slot: slot}, nil
}

func (s *GormStore) Load(ctx context.Context) []model.CartLine {
	var row cartSlot
	err := s.db.WithContext(ctx).First(&row, "slot = ?", s.slot).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart slot unreadable, starting empty", map[string]interface{}{
				"slot":  s.slot,
				"error": err.Error(),
			})
		}
		return []model.CartLine{}
	}

	var lines []model.CartLine
	if err := json.Unmarshal([]byte(row.Payload), &lines); err != nil {
		logger.Warn("Cart slot corrupted, starting empty", map[string]interface{}{
			"slot":  s.slot,
			"error": err.Error(),
		})
		return []model.CartLine{}
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return lines
}

func (s *GormStore) Save(ctx context.Context, lines []model.CartLine) error {
	if lines == nil {
		lines = []model.CartLine{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	row := cartSlot{Slot: s.slot, Payload: string(payload), UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}
