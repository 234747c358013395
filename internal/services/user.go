package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/leafcycle/plantcare-backend/internal/logger"
	"github.com/leafcycle/plantcare-backend/internal/repos"
	"github.com/leafcycle/plantcare-backend/internal/types"
)

const (
	demoUserEmail = "demo@plants.app"
	demoUserName  = "Demo Gardener"
)

type UserService interface {
	GetOrCreateDemoUser(ctx context.Context) (*types.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

// GetOrCreateDemoUser is the auth-free bootstrap: one well-known
// gardener account that owns everything created through the demo UI.
func (us *userService) GetOrCreateDemoUser(ctx context.Context) (*types.User, error) {
	var out *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := us.userRepo.GetByEmail(ctx, tx, demoUserEmail)
		if err == nil {
			out = found
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("error fetching demo user: %w", err)
		}

		fresh := &types.User{
			ID:     uuid.New(),
			Name:   demoUserName,
			Email:  demoUserEmail,
			XP:     0,
			Level:  1,
			Streak: 0,
			Badges: datatypes.JSONSlice[string]{},
		}
		if err := us.userRepo.Create(ctx, tx, fresh); err != nil {
			return fmt.Errorf("error creating demo user: %w", err)
		}
		us.log.Info("Demo user created", "user_id", fresh.ID)
		out = fresh
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	return us.userRepo.GetByID(ctx, nil, userID)
}
