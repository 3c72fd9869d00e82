package store

import (
	"context"

	"booking-app/internal/domain/recon"

	"gorm.io/gorm"
)

type GapStore struct {
	db *gorm.DB
}

func NewGapStore(db *gorm.DB) *GapStore {
	return &GapStore{db: db}
}

func (s *GapStore) Record(ctx context.Context, g *recon.Gap) error {
	return s.db.WithContext(ctx).Create(g).Error
}

func (s *GapStore) List(ctx context.Context) ([]recon.Gap, error) {
	var out []recon.Gap
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}
