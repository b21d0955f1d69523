package postgres

import (
	"context"
	"time"

	"github.com/ben/workshop-manager/internal/domain"
	"gorm.io/gorm"
)

type equipmentInstanceRepository struct {
	db *gorm.DB
}

func NewEquipmentInstanceRepository(db *gorm.DB) *equipmentInstanceRepository {
	return &equipmentInstanceRepository{db: db}
}

func (r *equipmentInstanceRepository) Create(ctx context.Context, instance *domain.EquipmentInstance) error {
	return r.db.WithContext(ctx).Create(instance).Error
}

func (r *equipmentInstanceRepository) GetByID(ctx context.Context, id uint) (*domain.EquipmentInstance, error) {
	var instance domain.EquipmentInstance
	err := r.db.WithContext(ctx).
		Preload("EquipmentType").
		First(&instance, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

func (r *equipmentInstanceRepository) GetByUserID(ctx context.Context, userID uint) ([]*domain.EquipmentInstance, error) {
	var instances []*domain.EquipmentInstance
	err := r.db.WithContext(ctx).
		Preload("EquipmentType").
		Where("user_id = ?", userID).
		Order("date_purchased DESC").
		Find(&instances).Error
	if err != nil {
		return nil, err
	}
	return instances, nil
}

func (r *equipmentInstanceRepository) GetAll(ctx context.Context) ([]*domain.EquipmentInstance, error) {
	var instances []*domain.EquipmentInstance
	err := r.db.WithContext(ctx).
		Preload("EquipmentType").
		Order("user_id ASC, date_purchased DESC").
		Find(&instances).Error
	if err != nil {
		return nil, err
	}
	return instances, nil
}

func (r *equipmentInstanceRepository) Update(ctx context.Context, instance *domain.EquipmentInstance) error {
	return r.db.WithContext(ctx).Save(instance).Error
}

func (r *equipmentInstanceRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.EquipmentInstance{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *equipmentInstanceRepository) GetOverdue(ctx context.Context, userID uint, before time.Time) ([]*domain.EquipmentInstance, error) {
	var instances []*domain.EquipmentInstance
	err := r.db.WithContext(ctx).
		Preload("EquipmentType").
		Where("user_id = ? AND next_maintenance_date < ?", userID, before).
		Order("next_maintenance_date ASC").
		Find(&instances).Error
	if err != nil {
		return nil, err
	}
	return instances, nil
}

func (r *equipmentInstanceRepository) GetDueBetween(ctx context.Context, userID uint, from, to time.Time) ([]*domain.EquipmentInstance, error) {
	var instances []*domain.EquipmentInstance
	err := r.db.WithContext(ctx).
		Preload("EquipmentType").
		Where("user_id = ? AND next_maintenance_date >= ? AND next_maintenance_date <= ?", userID, from, to).
		Order("next_maintenance_date ASC").
		Find(&instances).Error
	if err != nil {
		return nil, err
	}
	return instances, nil
}
