package service

import (
	"context"

	"github.com/ben/workshop-manager/internal/repository"
)

// UserDirectory answers existence questions about usernames. It is the
// shop-space store's only view into the identity store.
type UserDirectory interface {
	// UsernameExists is an exact, case-sensitive match.
	UsernameExists(ctx context.Context, username string) bool
}

// EquipmentOwnership answers whether an equipment instance exists and
// belongs to a given username. Both gateways fail closed: any store
// error reads as "no", never as a distinguishable infrastructure
// failure, so an operation is never granted on unverifiable input.
type EquipmentOwnership interface {
	BelongsToUser(ctx context.Context, equipmentID uint, username string) bool
}

type userDirectory struct {
	users repository.UserRepository
}

func NewUserDirectory(users repository.UserRepository) UserDirectory {
	return &userDirectory{users: users}
}

func (d *userDirectory) UsernameExists(ctx context.Context, username string) bool {
	user, err := d.users.GetByUsername(ctx, username)
	return err == nil && user != nil
}

type equipmentOwnership struct {
	users     repository.UserRepository
	instances repository.EquipmentInstanceRepository
}

func NewEquipmentOwnership(users repository.UserRepository, instances repository.EquipmentInstanceRepository) EquipmentOwnership {
	return &equipmentOwnership{users: users, instances: instances}
}

func (o *equipmentOwnership) BelongsToUser(ctx context.Context, equipmentID uint, username string) bool {
	user, err := o.users.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return false
	}
	instance, err := o.instances.GetByID(ctx, equipmentID)
	if err != nil || instance == nil {
		return false
	}
	return instance.UserID == user.ID
}
