package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"simrs-backend/internal/patient"
)

// NewClassifyCmd hitung umur, tipe pasien dan sapaan dari baris perintah
func NewClassifyCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "klasifikasi pasien (Bayi/Anak/Dewasa) dan sapaan",
		Example: "  simrsctl classify --birth-date 1990-04-02 --gender female --marital-status married\n" +
			"  simrsctl classify --birth-date 2010-06-15 --gender male --marital-status single --on 2024-06-15",
		RunE: func(cmd *cobra.Command, args []string) error {
			birthRaw, _ := cmd.Flags().GetString("birth-date")
			genderRaw, _ := cmd.Flags().GetString("gender")
			statusRaw, _ := cmd.Flags().GetString("marital-status")
			onRaw, _ := cmd.Flags().GetString("on")
			asJSON, _ := cmd.Flags().GetBool("json")

			birth, err := civil.ParseDate(birthRaw)
			if err != nil {
				return fmt.Errorf("--birth-date harus YYYY-MM-DD: %w", err)
			}
			today := patient.Today()
			if onRaw != "" {
				if today, err = civil.ParseDate(onRaw); err != nil {
					return fmt.Errorf("--on harus YYYY-MM-DD: %w", err)
				}
			}
			if fe := patient.CheckBirthDate(&birth, today); fe != nil {
				return fe
			}
			gender, err := patient.ParseGender(genderRaw)
			if err != nil {
				return err
			}
			status, err := patient.ParseMaritalStatus(statusRaw)
			if err != nil {
				return err
			}

			c, err := patient.ClassifyAt(birth, gender, status, today)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(c)
			}
			fmt.Fprintf(out, "umur: %d tahun\ntipe: %s\nsapaan: %s\n", c.Age, c.PatientType, c.Title)
			return nil
		},
	}

	pf := cmd.Flags()
	pf.String("birth-date", "", "tanggal lahir (YYYY-MM-DD)")
	pf.String("gender", "", "male | female")
	pf.String("marital-status", "", "single | married | divorced | widowed")
	pf.String("on", "", "tanggal acuan (default hari ini)")
	pf.Bool("json", false, "output JSON")
	_ = cmd.MarkFlagRequired("birth-date")
	_ = cmd.MarkFlagRequired("gender")
	_ = cmd.MarkFlagRequired("marital-status")
	return cmd
}
