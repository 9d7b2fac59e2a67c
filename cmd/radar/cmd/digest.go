package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/radar/internal/config"
	"github.com/agentstation/radar/pkg/dataset"
	"github.com/agentstation/radar/pkg/digest"
)

var digestDate string

// digestCmd represents the digest command
var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Re-render a digest from the stored dataset",
	Long: `Digest rebuilds the markdown digest for a date from the dataset table,
without fetching feeds. Rows whose status changed inside the digest
window ending at that date are selected; first recordings count as new,
promotions as promoted.

Useful after hand-editing the table or to regenerate a deleted digest.`,
	Example: `  radar digest
  radar digest --date 2025-06-01`,
	GroupID: "core",
	RunE:    runDigest,
}

func init() {
	rootCmd.AddCommand(digestCmd)

	digestCmd.Flags().StringVar(&digestDate, "date", "", "Digest date (YYYY-MM-DD, default today)")
}

func runDigest(_ *cobra.Command, _ []string) error {
	asOf := dataset.Today()
	if digestDate != "" {
		parsed, err := dataset.ParseDate(digestDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		asOf = parsed
	}

	rows, err := dataset.NewStore(config.TablePath()).Load()
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	if rows.Len() == 0 {
		fmt.Println("Dataset is empty, nothing to render")
		return nil
	}

	// The table records how each row last changed, which classifies rows
	// the same way a live run's change set would.
	var created, promoted []*dataset.Row
	for _, row := range rows.List() {
		if row.ChangeType == dataset.ChangeTypeNew {
			created = append(created, row)
		} else {
			promoted = append(promoted, row)
		}
	}

	entries := digest.Select(created, promoted, digest.Options{
		WindowDays: config.WindowDays(),
		Limit:      config.Limit(),
		AsOf:       asOf,
	})
	if len(entries) == 0 {
		fmt.Printf("No changes within %d days of %s\n",
			config.WindowDays(), dataset.FormatDate(asOf))
		return nil
	}

	path, err := digest.NewWriter(config.DigestDir()).Write(asOf, digest.Render(entries, asOf))
	if err != nil {
		return fmt.Errorf("writing digest: %w", err)
	}

	fmt.Printf("📝 Rendered %d entries to %s\n", len(entries), path)
	return nil
}
