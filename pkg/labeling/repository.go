package labeling

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("label record not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Record{}, &Upload{})
}

func (r *Repository) Create(ctx context.Context, rec *Record) error {
	rec.CreatedAt = time.Now().UTC()
	rec.UpdatedAt = rec.CreatedAt
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

func (r *Repository) List(ctx context.Context) ([]Record, error) {
	var recs []Record
	result := r.db.WithContext(ctx).Order("created_at desc").Find(&recs)
	return recs, result.Error
}

// Update applies the given column updates and returns the fresh row.
// created_at is never part of the update map. updated_at is always set, so
// an existing row always reports as affected and a zero count means the id
// does not exist.
func (r *Repository) Update(ctx context.Context, id string, updates map[string]interface{}) (*Record, error) {
	updates["updated_at"] = time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&Record{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.Get(ctx, id)
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	result := r.db.WithContext(ctx).Model(&Record{}).Count(&n)
	return n, result.Error
}

func (r *Repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	result := r.db.WithContext(ctx).Model(&Record{}).Where("status = ?", status).Count(&n)
	return n, result.Error
}

func (r *Repository) CreateUpload(ctx context.Context, up *Upload) error {
	up.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(up).Error
}

func (r *Repository) ListUploads(ctx context.Context) ([]Upload, error) {
	var ups []Upload
	result := r.db.WithContext(ctx).Order("created_at desc").Find(&ups)
	return ups, result.Error
}
