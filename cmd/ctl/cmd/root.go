package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"simrs-backend/internal/config"
)

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "simrsctl",
		Short:         "tools admin SIMRS pendaftaran pasien",
		Long:          "Migrasi database, cek klasifikasi pasien, laporan penjamin habis, dan akun petugas.",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")

			level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
			if err != nil || level == zerolog.NoLevel {
				level = zerolog.InfoLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
			if err != nil {
				log.Warn().Str("level", logLevel).Err(err).Msg("log level tidak dikenal, pakai INFO")
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewMigrateCmd(ctx),
		NewClassifyCmd(ctx),
		NewExpiringCmd(ctx),
		NewCreateUserCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	return cmd
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}

// openDB config dari .env/env yang sama dengan server API
func openDB() (*config.Config, *gorm.DB, error) {
	cfg := config.Load()
	db, err := config.ConnectDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
