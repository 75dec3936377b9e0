package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"simrs-backend/internal/models"
	"simrs-backend/internal/repository"
	"simrs-backend/pkg/utils"
)

// NewCreateUserCmd membuat akun petugas langsung ke database
func NewCreateUserCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "buat akun petugas",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")
			fullName, _ := cmd.Flags().GetString("full-name")

			if !validRole(role) {
				return fmt.Errorf("role %q tidak dikenal (admin|registrar|nurse|doctor)", role)
			}
			if fullName == "" {
				fullName = username
			}

			hash, err := utils.HashPassword(password)
			if err != nil {
				return err
			}

			_, db, err := openDB()
			if err != nil {
				return err
			}
			u := &models.User{Username: username, FullName: fullName, Role: role, PasswordHash: hash}
			if err := repository.NewUserRepository(db).Create(ctx, u); err != nil {
				return fmt.Errorf("simpan user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s (%s) dibuat dengan id %d\n", u.Username, u.Role, u.ID)
			return nil
		},
	}

	pf := cmd.Flags()
	pf.String("username", "", "username login")
	pf.String("password", "", "password (min 6 karakter)")
	pf.String("role", models.RoleRegistrar, "admin | registrar | nurse | doctor")
	pf.String("full-name", "", "nama lengkap (default username)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleRegistrar, models.RoleNurse, models.RoleDoctor:
		return true
	}
	return false
}
