package config

import (
	"context"
	"errors"

	"simrs-backend/internal/models"
	"simrs-backend/internal/repository"
	"simrs-backend/pkg/utils"
)

// EnsureAdmin membuat akun admin pertama kalau belum ada.
// Tanpa ADMIN_USERNAME/ADMIN_PASSWORD tidak melakukan apa-apa.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	_, err := users.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &models.User{
		Username:     username,
		FullName:     "Administrator",
		Role:         models.RoleAdmin,
		PasswordHash: hash,
	}
	if err := users.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}
