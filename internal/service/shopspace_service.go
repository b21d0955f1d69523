package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ben/workshop-manager/internal/domain"
	"github.com/ben/workshop-manager/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// shopIDTimestampLayout pins shop ids to second precision. Two shops
// with the same owner and name created within the same second collide;
// the store's uniqueness constraint catches it and the collision
// surfaces as a ValidationError.
const shopIDTimestampLayout = "20060102_150405"

// ShopSpaceService owns the placement store. Every mutation is a single
// read-modify-write of the whole row: fetch, mutate the list in memory,
// write the column back. There is deliberately no transaction spanning
// the read and the write (see the repository Save doc).
type ShopSpaceService struct {
	shops     repository.ShopSpaceRepository
	directory UserDirectory
	ownership EquipmentOwnership
	log       *zap.Logger
}

func NewShopSpaceService(shops repository.ShopSpaceRepository, directory UserDirectory, ownership EquipmentOwnership, log *zap.Logger) *ShopSpaceService {
	return &ShopSpaceService{
		shops:     shops,
		directory: directory,
		ownership: ownership,
		log:       log,
	}
}

func generateShopID(username, shopName string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s", username, shopName, now.Format(shopIDTimestampLayout))
}

func (s *ShopSpaceService) CreateShopSpace(ctx context.Context, username, shopName string, length, width, height float64) (*domain.ShopSpace, error) {
	if !s.directory.UsernameExists(ctx, username) {
		return nil, domain.NewValidationError("username %q does not exist", username)
	}

	now := time.Now()
	shop := &domain.ShopSpace{
		ShopID:            generateShopID(username, shopName, now),
		Username:          username,
		ShopName:          shopName,
		CreationTimestamp: now,
		Length:            length,
		Width:             width,
		Height:            height,
		Equipment:         domain.PlacementList{},
	}

	if err := s.shops.Create(ctx, shop); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.NewValidationError("error creating shop space: %v", err)
		}
		return nil, err
	}

	return s.GetShopSpaceByID(ctx, shop.ShopID)
}

// GetShopSpaceByID returns (nil, nil) for an unknown shop; absence is
// not an error.
func (s *ShopSpaceService) GetShopSpaceByID(ctx context.Context, shopID string) (*domain.ShopSpace, error) {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return shop, nil
}

func (s *ShopSpaceService) GetShopSpacesByUsername(ctx context.Context, username string) ([]*domain.ShopSpace, error) {
	return s.shops.GetByUsername(ctx, username)
}

func (s *ShopSpaceService) GetAllShopSpaces(ctx context.Context) ([]*domain.ShopSpace, error) {
	return s.shops.GetAll(ctx)
}

// AddEquipment appends a placement. The referenced equipment must exist
// AND belong to the shop's owning username, not merely exist anywhere.
// Adding the same equipment id twice is permitted and produces two
// entries.
func (s *ShopSpaceService) AddEquipment(ctx context.Context, shopID string, placement domain.Placement) (*domain.ShopSpace, error) {
	shop, err := s.GetShopSpaceByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.NewValidationError("shop space with ID %q does not exist", shopID)
	}

	if !s.ownership.BelongsToUser(ctx, placement.EquipmentID, shop.Username) {
		return nil, domain.NewValidationError("equipment with ID %d does not exist or does not belong to user", placement.EquipmentID)
	}

	if placement.DateAdded.IsZero() {
		placement.DateAdded = time.Now()
	}

	shop.Equipment = append(shop.Equipment, placement)
	if err := s.shops.Save(ctx, shop); err != nil {
		return nil, err
	}

	return s.GetShopSpaceByID(ctx, shopID)
}

// RemoveEquipment drops every placement matching the equipment id. An
// id that was never placed is not an error; the shop is returned
// unchanged.
func (s *ShopSpaceService) RemoveEquipment(ctx context.Context, shopID string, equipmentID uint) (*domain.ShopSpace, error) {
	shop, err := s.GetShopSpaceByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.NewValidationError("shop space with ID %q does not exist", shopID)
	}

	shop.Equipment = shop.Equipment.WithoutEquipment(equipmentID)
	if err := s.shops.Save(ctx, shop); err != nil {
		return nil, err
	}

	return s.GetShopSpaceByID(ctx, shopID)
}

// UpdateEquipmentPosition mutates the first placement matching the
// equipment id, touching only the supplied fields. With duplicated
// placements only the first entry is addressable.
func (s *ShopSpaceService) UpdateEquipmentPosition(ctx context.Context, shopID string, equipmentID uint, x, y, z, rotationDeg *float64) (*domain.ShopSpace, error) {
	shop, err := s.GetShopSpaceByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.NewValidationError("shop space with ID %q does not exist", shopID)
	}

	idx := shop.Equipment.IndexOf(equipmentID)
	if idx < 0 {
		return nil, domain.NewValidationError("equipment with ID %d not found in shop", equipmentID)
	}

	placement := &shop.Equipment[idx]
	if x != nil {
		placement.X = *x
	}
	if y != nil {
		placement.Y = *y
	}
	if z != nil {
		placement.Z = *z
	}
	if rotationDeg != nil {
		placement.RotationDeg = *rotationDeg
	}

	if err := s.shops.Save(ctx, shop); err != nil {
		return nil, err
	}

	return s.GetShopSpaceByID(ctx, shopID)
}

// UpdateDimensions is a partial update of room dimensions and shop
// name; omitted fields retain their prior value. The equipment list is
// untouched.
func (s *ShopSpaceService) UpdateDimensions(ctx context.Context, shopID string, length, width, height *float64, shopName *string) (*domain.ShopSpace, error) {
	shop, err := s.GetShopSpaceByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.NewValidationError("shop space with ID %q does not exist", shopID)
	}

	if length != nil {
		shop.Length = *length
	}
	if width != nil {
		shop.Width = *width
	}
	if height != nil {
		shop.Height = *height
	}
	if shopName != nil {
		shop.ShopName = *shopName
	}

	if err := s.shops.Save(ctx, shop); err != nil {
		return nil, err
	}

	return s.GetShopSpaceByID(ctx, shopID)
}

// PositionUpdate is one entry of a batch layout save.
type PositionUpdate struct {
	EquipmentID uint
	X           *float64
	Y           *float64
	Z           *float64
	RotationDeg *float64
}

// LayoutUpdate carries the whole canvas save: optional dimensions/name
// plus a batch of position updates.
type LayoutUpdate struct {
	ShopName  *string
	Length    *float64
	Width     *float64
	Height    *float64
	Positions []PositionUpdate
}

// UpdateLayout applies the dimension update, then each position update
// individually. A position referencing equipment that is no longer in
// the shop must not abort the batch: the failure is logged, the id is
// collected, and the save proceeds. The returned slice names the
// equipment ids whose sub-update failed.
func (s *ShopSpaceService) UpdateLayout(ctx context.Context, shopID string, input LayoutUpdate) (*domain.ShopSpace, []uint, error) {
	if _, err := s.UpdateDimensions(ctx, shopID, input.Length, input.Width, input.Height, input.ShopName); err != nil {
		return nil, nil, err
	}

	var failed []uint
	for _, pos := range input.Positions {
		_, err := s.UpdateEquipmentPosition(ctx, shopID, pos.EquipmentID, pos.X, pos.Y, pos.Z, pos.RotationDeg)
		if err == nil {
			continue
		}
		if domain.IsValidationError(err) {
			s.log.Warn("skipping equipment position update",
				zap.String("shop_id", shopID),
				zap.Uint("equipment_id", pos.EquipmentID),
				zap.Error(err))
			failed = append(failed, pos.EquipmentID)
			continue
		}
		return nil, failed, err
	}

	shop, err := s.GetShopSpaceByID(ctx, shopID)
	if err != nil {
		return nil, failed, err
	}
	return shop, failed, nil
}

// DeleteShopSpace removes the row and reports whether it existed.
// Equipment instances referenced by the deleted shop's placements are
// untouched; cross-store cleanup is deliberately not cascading.
func (s *ShopSpaceService) DeleteShopSpace(ctx context.Context, shopID string) (bool, error) {
	return s.shops.Delete(ctx, shopID)
}
