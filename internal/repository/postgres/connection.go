package postgres

import (
	"github.com/ben/workshop-manager/internal/domain"
	"github.com/ben/workshop-manager/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Stores bundles the three independent logical stores. They may point
// at the same database or three different ones; either way there are no
// cross-store foreign keys and referential checks stay in the services.
type Stores struct {
	Users      *gorm.DB
	Equipment  *gorm.DB
	ShopSpaces *gorm.DB
}

func open(databaseURL string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
}

func NewStores(usersURL, equipmentURL, shopSpacesURL string) (*Stores, error) {
	users, err := open(usersURL)
	if err != nil {
		return nil, err
	}
	if err := users.AutoMigrate(&domain.User{}, &domain.UserSession{}); err != nil {
		return nil, err
	}

	equipment, err := open(equipmentURL)
	if err != nil {
		return nil, err
	}
	if err := equipment.AutoMigrate(&domain.EquipmentType{}, &domain.EquipmentInstance{}); err != nil {
		return nil, err
	}

	shopSpaces, err := open(shopSpacesURL)
	if err != nil {
		return nil, err
	}
	if err := shopSpaces.AutoMigrate(&domain.ShopSpace{}); err != nil {
		return nil, err
	}

	return &Stores{Users: users, Equipment: equipment, ShopSpaces: shopSpaces}, nil
}

func NewRepositories(stores *Stores) *repository.Repositories {
	return &repository.Repositories{
		User:              NewUserRepository(stores.Users),
		Session:           NewSessionRepository(stores.Users),
		EquipmentType:     NewEquipmentTypeRepository(stores.Equipment),
		EquipmentInstance: NewEquipmentInstanceRepository(stores.Equipment),
		ShopSpace:         NewShopSpaceRepository(stores.ShopSpaces),
	}
}
