package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cosmeticdb/license-registry/internal/storage"
)

// sampleLicenses is a small demo dataset of realistic registry records.
var sampleLicenses = []*storage.License{
	{
		LicenseNumber:      "64300861",
		NotificationNumber: "0622025102818",
		ProductName:        "קרם לחות מועשר בויטמין E",
		Country:            "ישראל",
		Manufacturer:       "קוסמטיקה בע\"מ",
	},
	{
		LicenseNumber:      "12345678",
		NotificationNumber: "2/182319/24",
		ProductName:        "שמפו טיפולי לשיער יבש",
		Country:            "צרפת",
		Manufacturer:       "L'Oreal Paris",
	},
	{
		LicenseNumber:      "87654321",
		NotificationNumber: "0622025103456",
		ProductName:        "סרום פנים אנטי אייג'ינג",
		Country:            "גרמניה",
		Manufacturer:       "Nivea GmbH",
	},
	{
		LicenseNumber:      "11223344",
		NotificationNumber: "3/245678/24",
		ProductName:        "מסכת פנים מרגיעה",
		Country:            "דרום קוריאה",
		Manufacturer:       "K-Beauty Co.",
	},
	{
		LicenseNumber:      "99887766",
		NotificationNumber: "0622025104567",
		ProductName:        "תחליב גוף מזין",
		Country:            "ארצות הברית",
		Manufacturer:       "Johnson & Johnson",
	},
	{
		LicenseNumber:      "55443322",
		NotificationNumber: "4/156789/24",
		ProductName:        "קרם לילה משקם",
		Country:            "שוויץ",
		Manufacturer:       "La Prairie",
	},
	{
		LicenseNumber:      "66778899",
		NotificationNumber: "0622025105678",
		ProductName:        "ג'ל ניקוי עדין לפנים",
		Country:            "יפן",
		Manufacturer:       "Shiseido",
	},
	{
		LicenseNumber:      "33221100",
		NotificationNumber: "5/167890/24",
		ProductName:        "קרם הגנה SPF 50",
		Country:            "ישראל",
		Manufacturer:       "Dead Sea Minerals",
	},
}

// writePlaceholderDocs drops one placeholder document per sample record into
// the uploads directory so /uploads links resolve after seeding. The files are
// plain-text stand-ins, not real PDFs.
func writePlaceholderDocs(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, license := range sampleLicenses {
		content := fmt.Sprintf(`Cosmetic License Document

License Number: %s
Notification Number: %s
Product Name: %s
Country of Origin: %s
Manufacturer: %s

Placeholder document for demonstration purposes.
`, license.LicenseNumber, license.NotificationNumber, license.ProductName,
			license.Country, license.Manufacturer)

		name := filepath.Join(dir, license.LicenseNumber+".pdf")
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// newSeedCmd creates the seed subcommand.
func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all records with the sample dataset",
		Long: `Seed purges the registry and inserts a small sample dataset.
Intended for demos and local development only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := storage.NewLicenseRepository(db)

			removed, err := repo.DeleteAll(ctx)
			if err != nil {
				return fmt.Errorf("purge before seed: %w", err)
			}
			logger.Info().Int64("removed", removed).Msg("cleared existing records")

			for _, license := range sampleLicenses {
				if err := repo.Create(ctx, license); err != nil {
					return fmt.Errorf("seed %s: %w", license.LicenseNumber, err)
				}
			}

			if err := writePlaceholderDocs(cfg.Documents.Dir); err != nil {
				return fmt.Errorf("write placeholder documents: %w", err)
			}

			printSuccess("seeded %d sample licenses", len(sampleLicenses))
			return nil
		},
	}

	return cmd
}
