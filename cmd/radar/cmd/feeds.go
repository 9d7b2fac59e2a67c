package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/radar/internal/config"
	"github.com/agentstation/radar/pkg/feeds"
)

// feedsCmd represents the feeds command
var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Show the configured feed registry",
	Long: `Feeds lists the RSS/Atom sources a scan will fetch: the built-in
registry, or the file named by --feeds or the feeds config key.`,
	GroupID: "core",
	RunE:    runFeeds,
}

func init() {
	rootCmd.AddCommand(feedsCmd)
}

func runFeeds(_ *cobra.Command, _ []string) error {
	registry := feeds.DefaultFeeds()
	source := "built-in"
	if file := config.FeedsFile(); file != "" {
		loaded, err := feeds.LoadFile(file)
		if err != nil {
			return fmt.Errorf("loading feeds from %s: %w", file, err)
		}
		registry = loaded
		source = file
	}

	fmt.Printf("Configured feeds (%d, %s):\n\n", len(registry), source)
	for _, feed := range registry {
		fmt.Printf("• %s\n  %s\n", feed.Name, feed.URL)
	}
	return nil
}
