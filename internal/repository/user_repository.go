package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todolist/internal/model"
)

// Sentinel failures for the atomic check-and-write paths. Services translate
// these into their own error taxonomy.
var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrAdminExists   = errors.New("an administrator is already registered")
	ErrMemberExists  = errors.New("user already belongs to the team")
	ErrMemberMissing = errors.New("user does not belong to the team")
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUnique inserts a user after verifying, inside one transaction, that
// the email is free and that no second administrator sneaks in. Keeping the
// check and the insert in the same transaction closes the read-then-write
// race the separate existence queries would leave open.
func (r *UserRepository) CreateUnique(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return ErrEmailTaken
		}
		if user.Admin {
			if err := tx.Model(&model.User{}).Where("admin = ?", true).Count(&count).Error; err != nil {
				return fmt.Errorf("check administrator: %w", err)
			}
			if count > 0 {
				return ErrAdminExists
			}
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListPage returns one page of users ordered by ascending id.
func (r *UserRepository) ListPage(ctx context.Context, offset, limit int) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AdminExists reports whether any stored user carries the administrator flag.
func (r *UserRepository) AdminExists(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("admin = ?", true).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Delete removes the user together with their tasks and team memberships.
func (r *UserRepository) Delete(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete user tasks: %w", err)
		}
		if err := tx.Model(user).Association("Teams").Clear(); err != nil {
			return fmt.Errorf("clear memberships: %w", err)
		}
		if err := tx.Delete(user).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}
