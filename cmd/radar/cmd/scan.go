package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/radar"
	"github.com/agentstation/radar/internal/config"
	"github.com/agentstation/radar/pkg/classify"
	"github.com/agentstation/radar/pkg/constants"
	"github.com/agentstation/radar/pkg/enhancer"
	"github.com/agentstation/radar/pkg/feeds"
	"github.com/agentstation/radar/pkg/logging"
)

// lockFile guards against overlapping scan invocations from cron.
const lockFile = ".radar.lock"

var scanDryRun bool

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Fetch feeds, update the dataset, and write the daily digest",
	Long: `Scan runs the full radar pipeline once.

The command will:
1. Fetch every configured RSS/Atom feed
2. Classify entries into product lifecycle statuses
3. Merge the observations into the CSV dataset
4. Write a markdown digest of what changed

A failing feed is logged and skipped. A file lock under the data
directory keeps overlapping cron invocations from interleaving.`,
	Example: `  radar scan
  radar scan --dry-run
  radar scan --window 3 --limit 10
  radar scan --enhance  # polish digest summaries via Gemini`,
	GroupID: "core",
	RunE:    runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "Report what would change without writing anything")
	scanCmd.Flags().Int("window", 0, "Digest window in days (default 7)")
	scanCmd.Flags().Int("limit", 0, "Cap digest entries, 0 means unbounded")
	scanCmd.Flags().Bool("suppress-first", false, "Skip the digest when seeding an empty dataset")
	scanCmd.Flags().Bool("enhance", false, "Polish digest summaries with Gemini (needs GEMINI_API_KEY)")

	// Bind flags to viper
	if err := viper.BindPFlag(config.KeyWindowDays, scanCmd.Flags().Lookup("window")); err != nil {
		panic(fmt.Sprintf("Failed to bind window flag: %v", err))
	}
	if err := viper.BindPFlag(config.KeyLimit, scanCmd.Flags().Lookup("limit")); err != nil {
		panic(fmt.Sprintf("Failed to bind limit flag: %v", err))
	}
	if err := viper.BindPFlag(config.KeySuppressFirst, scanCmd.Flags().Lookup("suppress-first")); err != nil {
		panic(fmt.Sprintf("Failed to bind suppress-first flag: %v", err))
	}
	if err := viper.BindPFlag(config.KeyEnhance, scanCmd.Flags().Lookup("enhance")); err != nil {
		panic(fmt.Sprintf("Failed to bind enhance flag: %v", err))
	}
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	r, err := newRadar(ctx)
	if err != nil {
		return err
	}

	// One scan at a time per data directory; cron schedules overlap when
	// a slow feed stalls a run.
	lock := flock.New(filepath.Join(config.DataDir(), lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring scan lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another radar scan is already running")
	}
	defer func() { _ = lock.Unlock() }()

	if scanDryRun {
		fmt.Printf("🔍 Dry run - no changes will be made\n\n")
	}

	result, err := r.Scan(ctx,
		radar.ScanWithDryRun(scanDryRun),
		radar.ScanWithTimeout(constants.CommandTimeout),
	)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	printScanResult(result)
	return nil
}

// newRadar assembles a Radar from the resolved configuration.
func newRadar(ctx context.Context) (radar.Radar, error) {
	opts := []radar.Option{
		radar.WithTablePath(config.TablePath()),
		radar.WithDigestDir(config.DigestDir()),
		radar.WithWindowDays(config.WindowDays()),
		radar.WithLimit(config.Limit()),
		radar.WithSuppressFirst(config.SuppressFirst()),
	}

	if file := config.FeedsFile(); file != "" {
		registry, err := feeds.LoadFile(file)
		if err != nil {
			return nil, fmt.Errorf("loading feeds from %s: %w", file, err)
		}
		opts = append(opts, radar.WithFeeds(registry))
	}

	if file := config.RulesFile(); file != "" {
		rules, err := classify.LoadRules(file)
		if err != nil {
			return nil, fmt.Errorf("loading rules from %s: %w", file, err)
		}
		opts = append(opts, radar.WithRules(rules))
	}

	if config.Enhance() {
		if gemini := newGemini(ctx); gemini != nil {
			opts = append(opts, radar.WithEnhancer(gemini))
		}
	}

	return radar.New(opts...)
}

// newGemini builds the digest enhancer, or nil when the client cannot be
// constructed. A missing key downgrades to a plain digest rather than
// failing the run.
func newGemini(ctx context.Context) enhancer.Enhancer {
	var geminiOpts []enhancer.GeminiOption
	if model := config.GeminiModel(); model != "" {
		geminiOpts = append(geminiOpts, enhancer.WithModel(model))
	}

	gemini, err := enhancer.NewGemini(ctx, config.GeminiAPIKey(), geminiOpts...)
	if err != nil {
		logging.Warn().Err(err).Msg("Digest enhancement disabled")
		return nil
	}
	return gemini
}

// printScanResult renders the run outcome for a terminal reader.
func printScanResult(result *radar.ScanResult) {
	if result.FeedsFailed > 0 {
		fmt.Printf("⚠️  %d of %d feeds failed\n",
			result.FeedsFailed, result.FeedsFetched+result.FeedsFailed)
	}

	if !result.HasChanges() {
		fmt.Printf("✅ %s\n", result.Summary())
		return
	}

	fmt.Printf("📊 %s\n", result.Summary())
	if len(result.Digest) > 0 {
		fmt.Println()
		for _, entry := range result.Digest {
			fmt.Printf("  • %s: %s — %s (%s)\n",
				entry.Row.Company, entry.Row.Product, entry.Row.Status, entry.Reason)
		}
	}
	if result.DigestPath != "" {
		fmt.Printf("\n📝 Digest written to %s\n", result.DigestPath)
	}
}
