package service

import (
	"context"
	"errors"

	"github.com/ben/workshop-manager/internal/domain"
	"github.com/ben/workshop-manager/internal/repository"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *UserService {
	return &UserService{userRepo: userRepo, sessionRepo: sessionRepo}
}

// GetUserByID returns (nil, nil) when no user has the id.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetUserByUsername returns (nil, nil) when no user has the username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) SearchUsers(ctx context.Context, term string) ([]*domain.User, error) {
	return s.userRepo.Search(ctx, term)
}

// DeleteUser removes the user row and any active session. Equipment
// instances and shop spaces live in other stores and are deliberately
// left untouched.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		_ = s.sessionRepo.DeleteByUserID(ctx, id)
	}
	return deleted, nil
}
