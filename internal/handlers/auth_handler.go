package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"simrs-backend/internal/models"
	"simrs-backend/internal/repository"
	"simrs-backend/pkg/utils"
)

// REGISTER (khusus admin: akun petugas dibuat oleh admin, bukan daftar sendiri)
func (h *Handler) Register(c *gin.Context) {
	var input models.RegisterInput

	// 1. Validasi Input JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", err.Error())
		return
	}

	// 2. Username harus unik
	username := strings.TrimSpace(input.Username)
	if _, err := h.Users.FindByUsername(c.Request.Context(), username); err == nil {
		utils.APIResponse(c, http.StatusConflict, false, "Username sudah terdaftar!", nil)
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		h.Logger.Error().Err(err).Msg("cek username gagal")
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal memproses data", nil)
		return
	}

	// 3. Hash Password
	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			utils.APIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
			return
		}
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal memproses password", nil)
		return
	}

	// 4. Simpan ke Database
	user := models.User{
		Username:     username,
		FullName:     strings.TrimSpace(input.FullName),
		Email:        strings.TrimSpace(input.Email),
		Role:         input.Role,
		PasswordHash: hashedPassword,
	}
	if err := h.Users.Create(c.Request.Context(), &user); err != nil {
		h.Logger.Error().Err(err).Str("username", username).Msg("gagal membuat user")
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal menyimpan user", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Akun petugas berhasil dibuat", user)
}

// LOGIN
func (h *Handler) Login(c *gin.Context) {
	var input models.LoginInput

	// 1. Validasi Input
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	// 2. Cari User berdasarkan Username
	user, err := h.Users.FindByUsername(c.Request.Context(), strings.TrimSpace(input.Username))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.Logger.Error().Err(err).Msg("login: query user gagal")
		}
		utils.APIResponse(c, http.StatusUnauthorized, false, "Username atau Password salah", nil)
		return
	}

	// 3. Cek Password
	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Username atau Password salah", nil)
		return
	}

	// Jika frontend mengirim token FCM, simpan ke database
	if input.FCMToken != "" && input.FCMToken != user.FCMToken {
		if err := h.Users.UpdateFCMToken(c.Request.Context(), user.ID, input.FCMToken); err != nil {
			h.Logger.Warn().Err(err).Uint64("user_id", user.ID).Msg("gagal simpan fcm token")
		}
	}

	// 4. Generate JWT Token
	token, err := h.Tokens.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal generate token", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Login Berhasil", gin.H{
		"token":      token,
		"expires_in": int(h.Tokens.TTL().Seconds()),
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		},
	})
}
