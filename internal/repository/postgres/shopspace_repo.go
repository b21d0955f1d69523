package postgres

import (
	"context"

	"github.com/ben/workshop-manager/internal/domain"
	"gorm.io/gorm"
)

type shopSpaceRepository struct {
	db *gorm.DB
}

func NewShopSpaceRepository(db *gorm.DB) *shopSpaceRepository {
	return &shopSpaceRepository{db: db}
}

func (r *shopSpaceRepository) Create(ctx context.Context, shop *domain.ShopSpace) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

func (r *shopSpaceRepository) GetByID(ctx context.Context, shopID string) (*domain.ShopSpace, error) {
	var shop domain.ShopSpace
	err := r.db.WithContext(ctx).First(&shop, "shop_id = ?", shopID).Error
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopSpaceRepository) GetByUsername(ctx context.Context, username string) ([]*domain.ShopSpace, error) {
	var shops []*domain.ShopSpace
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("creation_timestamp DESC").
		Find(&shops).Error
	if err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *shopSpaceRepository) GetAll(ctx context.Context) ([]*domain.ShopSpace, error) {
	var shops []*domain.ShopSpace
	err := r.db.WithContext(ctx).
		Order("creation_timestamp DESC").
		Find(&shops).Error
	if err != nil {
		return nil, err
	}
	return shops, nil
}

// Save rewrites the whole row, equipment column included. Placement
// mutations are read-modify-write at the caller: there is no
// transaction spanning the fetch and this write, so concurrent writers
// to the same shop_id can lose updates. Accepted limitation for the
// single-owner-per-shop workload.
func (r *shopSpaceRepository) Save(ctx context.Context, shop *domain.ShopSpace) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

func (r *shopSpaceRepository) Delete(ctx context.Context, shopID string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.ShopSpace{}, "shop_id = ?", shopID)
	return res.RowsAffected > 0, res.Error
}
