package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"simrs-backend/internal/config"
)

// NewMigrateCmd membuat/menyesuaikan tabel tanpa menjalankan server
func NewMigrateCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "auto-migrate tabel users, patients, guarantors, patient_audits",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			if err := config.Migrate(db.WithContext(ctx)); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info().Str("driver", cfg.DBDriver).Msg("migrasi selesai")
			return nil
		},
	}
	return cmd
}
