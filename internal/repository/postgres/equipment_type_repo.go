package postgres

import (
	"context"

	"github.com/ben/workshop-manager/internal/domain"
	"gorm.io/gorm"
)

type equipmentTypeRepository struct {
	db *gorm.DB
}

func NewEquipmentTypeRepository(db *gorm.DB) *equipmentTypeRepository {
	return &equipmentTypeRepository{db: db}
}

func (r *equipmentTypeRepository) Create(ctx context.Context, equipmentType *domain.EquipmentType) error {
	return r.db.WithContext(ctx).Create(equipmentType).Error
}

func (r *equipmentTypeRepository) GetByID(ctx context.Context, id uint) (*domain.EquipmentType, error) {
	var equipmentType domain.EquipmentType
	err := r.db.WithContext(ctx).First(&equipmentType, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &equipmentType, nil
}

func (r *equipmentTypeRepository) GetAll(ctx context.Context) ([]*domain.EquipmentType, error) {
	var types []*domain.EquipmentType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}
