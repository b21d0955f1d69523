package service

import (
	"github.com/ben/workshop-manager/internal/cache"
	"github.com/ben/workshop-manager/internal/config"
	"github.com/ben/workshop-manager/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Auth      *AuthService
	User      *UserService
	Equipment *EquipmentService
	ShopSpace *ShopSpaceService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, catalog *cache.CatalogCache, log *zap.Logger) *Services {
	directory := NewUserDirectory(repos.User)
	ownership := NewEquipmentOwnership(repos.User, repos.EquipmentInstance)

	return &Services{
		Auth:      NewAuthService(repos.User, repos.Session, cfg),
		User:      NewUserService(repos.User, repos.Session),
		Equipment: NewEquipmentService(repos.EquipmentType, repos.EquipmentInstance, repos.User, repos.ShopSpace, catalog, log),
		ShopSpace: NewShopSpaceService(repos.ShopSpace, directory, ownership, log),
	}
}
