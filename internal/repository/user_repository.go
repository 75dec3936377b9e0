package repository

import (
	"context"

	"gorm.io/gorm"

	"simrs-backend/internal/models"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint64) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	UpdateFCMToken(ctx context.Context, id uint64, token string) error
	StaffTokens(ctx context.Context) ([]string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// Kita hanya update kolom fcm_token agar efisien
func (r *userRepository) UpdateFCMToken(ctx context.Context, id uint64, token string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("fcm_token", token).Error
}

// StaffTokens token FCM semua petugas yang pernah login dari aplikasi
func (r *userRepository) StaffTokens(ctx context.Context) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("fcm_token <> ''").
		Pluck("fcm_token", &tokens).Error
	return tokens, err
}
