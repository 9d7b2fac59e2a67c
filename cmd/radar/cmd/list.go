package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/agentstation/radar/internal/config"
	"github.com/agentstation/radar/pkg/dataset"
)

var (
	listCompany string
	listStatus  string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked products from the dataset",
	Long: `List displays the rows of the dataset table, grouped by company with
the newest status changes first.

Rows can be narrowed by company or lifecycle status. Output is a rounded
table on terminals and tab-separated text when piped.`,
	Example: `  radar list
  radar list --company OpenAI
  radar list --status Shipped
  radar list | cut -f2`,
	GroupID: "core",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listCompany, "company", "", "Only rows for this company")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Only rows with this status (Announced, Preview, Upgraded, Shipped, Deprecated, Delayed)")
}

func runList(_ *cobra.Command, _ []string) error {
	var status dataset.Status
	if listStatus != "" {
		parsed, err := dataset.ParseStatus(listStatus)
		if err != nil {
			return err
		}
		status = parsed
	}

	rows, err := dataset.NewStore(config.TablePath()).Load()
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	matched := make([]*dataset.Row, 0, rows.Len())
	for _, row := range rows.List() {
		if listCompany != "" && !strings.EqualFold(row.Company, listCompany) {
			continue
		}
		if status != "" && row.Status != status {
			continue
		}
		matched = append(matched, row)
	}

	if len(matched) == 0 {
		fmt.Println("No matching rows in dataset")
		return nil
	}

	headers := []string{"COMPANY", "PRODUCT", "CATEGORY", "STATUS", "STATUS DATE", "LAST SEEN"}
	cells := make([][]string, 0, len(matched))
	for _, row := range matched {
		cells = append(cells, []string{
			row.Company,
			row.Product,
			row.Category,
			row.Status.String(),
			dataset.FormatDate(row.StatusDate),
			dataset.FormatDate(row.LastSeen),
		})
	}

	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Printf("Found %d rows:\n\n", len(matched))
		fmt.Println(renderTable(headers, cells))
	} else {
		printTSV(headers, cells)
	}
	return nil
}

// printTSV writes tab-separated rows for piped output.
func printTSV(headers []string, rows [][]string) {
	fmt.Println(strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Println(strings.Join(row, "\t"))
	}
}
