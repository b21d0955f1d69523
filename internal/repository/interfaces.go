package repository

import (
	"context"
	"time"

	"github.com/ben/workshop-manager/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
	Search(ctx context.Context, term string) ([]*domain.User, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uint) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type EquipmentTypeRepository interface {
	Create(ctx context.Context, equipmentType *domain.EquipmentType) error
	GetByID(ctx context.Context, id uint) (*domain.EquipmentType, error)
	GetAll(ctx context.Context) ([]*domain.EquipmentType, error)
}

type EquipmentInstanceRepository interface {
	Create(ctx context.Context, instance *domain.EquipmentInstance) error
	GetByID(ctx context.Context, id uint) (*domain.EquipmentInstance, error)
	GetByUserID(ctx context.Context, userID uint) ([]*domain.EquipmentInstance, error)
	GetAll(ctx context.Context) ([]*domain.EquipmentInstance, error)
	Update(ctx context.Context, instance *domain.EquipmentInstance) error
	Delete(ctx context.Context, id uint) (bool, error)
	GetOverdue(ctx context.Context, userID uint, before time.Time) ([]*domain.EquipmentInstance, error)
	GetDueBetween(ctx context.Context, userID uint, from, to time.Time) ([]*domain.EquipmentInstance, error)
}

type ShopSpaceRepository interface {
	Create(ctx context.Context, shop *domain.ShopSpace) error
	GetByID(ctx context.Context, shopID string) (*domain.ShopSpace, error)
	GetByUsername(ctx context.Context, username string) ([]*domain.ShopSpace, error)
	GetAll(ctx context.Context) ([]*domain.ShopSpace, error)
	Save(ctx context.Context, shop *domain.ShopSpace) error
	Delete(ctx context.Context, shopID string) (bool, error)
}

type Repositories struct {
	User              UserRepository
	Session           SessionRepository
	EquipmentType     EquipmentTypeRepository
	EquipmentInstance EquipmentInstanceRepository
	ShopSpace         ShopSpaceRepository
}
