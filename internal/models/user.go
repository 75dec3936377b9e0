package models

import (
	"time"

	"gorm.io/gorm"
)

// Role petugas SIMRS
const (
	RoleAdmin     = "admin"
	RoleRegistrar = "registrar" // petugas pendaftaran
	RoleNurse     = "nurse"
	RoleDoctor    = "doctor"
)

// User merepresentasikan tabel 'users' (akun petugas)
type User struct {
	ID           uint64         `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	FullName     string         `gorm:"size:100;not null" json:"full_name"`
	Email        string         `gorm:"size:100" json:"email"`
	Role         string         `gorm:"size:20;not null;default:registrar" json:"role"`
	PasswordHash string         `gorm:"not null" json:"-"` // tidak pernah dikirim ke frontend
	FCMToken     string         `gorm:"size:255" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Struct untuk menangkap Input Register dari admin
type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin registrar nurse doctor"`
}

// Struct untuk menangkap Input Login
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FCMToken string `json:"fcm_token"`
}
