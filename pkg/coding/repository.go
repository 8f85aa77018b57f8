package coding

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("prediction record not found")

// Record is the persisted audit trail of a served prediction request.
type Record struct {
	ID          string            `json:"id" gorm:"primaryKey;column:id"`
	RequestText string            `json:"request_text" gorm:"column:request_text"`
	CodeType    string            `json:"code_type" gorm:"column:code_type"`
	Threshold   float64           `json:"threshold" gorm:"column:threshold"`
	TopK        int               `json:"top_k" gorm:"column:top_k"`
	Source      string            `json:"source" gorm:"column:source"`
	Predictions datatypes.JSONMap `json:"predictions" gorm:"column:predictions"`
	CreatedAt   time.Time         `json:"created_at" gorm:"column:created_at"`
}

func (Record) TableName() string {
	return "prediction_requests"
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Record{})
}

func (r *Repository) Create(ctx context.Context, rec *Record) error {
	rec.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *Repository) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	result := r.db.WithContext(ctx).First(&rec, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &rec, result.Error
}

func (r *Repository) CleanupExpired(ctx context.Context, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	cutoff := time.Now().UTC().Add(-ttl)
	return r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&Record{}).Error
}
