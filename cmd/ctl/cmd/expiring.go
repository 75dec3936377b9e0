package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"simrs-backend/internal/patient"
	"simrs-backend/internal/reminder"
	"simrs-backend/internal/repository"
	"simrs-backend/pkg/utils"
)

// NewExpiringCmd laporan kartu penjamin yang habis, opsional kirim push ke petugas
func NewExpiringCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expiring",
		Short: "daftar penjamin yang habis dalam N hari",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			notify, _ := cmd.Flags().GetBool("notify")

			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = cfg.ExpiryWindowDays
			}

			var notifier reminder.Notifier
			if notify {
				if cfg.FCMCredentials == "" {
					return fmt.Errorf("--notify butuh FCM_CREDENTIALS")
				}
				fcm, err := utils.NewFCMClient(ctx, cfg.FCMCredentials)
				if err != nil {
					return err
				}
				notifier = fcm
			}

			svc := reminder.NewService(repository.NewPatientRepository(db), repository.NewUserRepository(db), notifier, log.Logger)
			report, err := svc.Report(ctx, patient.Today(), days)
			if err != nil {
				return err
			}
			if err := printReport(cmd.OutOrStdout(), report); err != nil {
				return err
			}

			if notify {
				sent, err := svc.Notify(ctx, report)
				if err != nil {
					return err
				}
				log.Info().Int("sent", sent).Msg("notifikasi terkirim")
			}
			return nil
		},
	}

	pf := cmd.Flags()
	pf.Int("days", patient.DefaultExpiryWindow, "jendela hari ke depan (default EXPIRY_WINDOW_DAYS)")
	pf.Bool("notify", false, "kirim push notification FCM ke petugas")
	return cmd
}

func printReport(w io.Writer, report *reminder.Report) error {
	if len(report.Items) == 0 {
		_, err := fmt.Fprintf(w, "tidak ada penjamin yang habis s/d %s\n", report.Today.AddDays(report.WindowDays))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NO. RM\tNAMA\tPENJAMIN\tNO. KARTU\tHABIS\tSISA HARI\tSTATUS")
	for _, it := range report.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			it.MRNumber, it.FullName, it.Company, it.CardNumber, it.ExpiryDate, it.DaysLeft, it.Status)
	}
	return tw.Flush()
}
