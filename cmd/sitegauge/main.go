package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sitegauge/engine/internal/analyzer"
	"github.com/sitegauge/engine/internal/common/configtypes"
	"github.com/sitegauge/engine/internal/common/htmlprocessor"
	"github.com/sitegauge/engine/internal/fetch"
	"github.com/sitegauge/engine/internal/rewriter"
	"github.com/sitegauge/engine/pkg/pattern"
	"github.com/sitegauge/engine/pkg/types"
)

var (
	flagJSON    bool
	flagFile    string
	flagOnly    string
	flagTimeout int
	flagRelays  []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sitegauge",
		Short: "Heuristic site and content analysis from the command line",
	}

	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit raw JSON instead of a report")
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Read input from a file instead of fetching ('-' for stdin)")
	rootCmd.PersistentFlags().StringVar(&flagOnly, "only", "", "Show only checks whose name matches (exact, wildcard '*', or '~regexp')")

	rootCmd.AddCommand(
		newPageCmd("seo", "Run the SEO health battery against a page", analyzer.AnalyzeSEO),
		newPageCmd("ads", "Run the ad-network readiness battery against a page", analyzer.AnalyzeAdReadiness),
		newPageCmd("static", "Run the static-site readiness battery against a page", analyzer.AnalyzeStaticSite),
		newLowValueCmd(),
		newHumanizeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newPageCmd(use, short string, analyze func(htmlprocessor.Document, string) types.AnalysisOutcome) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [url]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageURL := ""
			if len(args) > 0 {
				pageURL = args[0]
			}

			htmlBytes, err := loadPage(cmd.Context(), pageURL)
			if err != nil {
				return err
			}

			doc, err := htmlprocessor.Parse(htmlBytes)
			if err != nil {
				return fmt.Errorf("failed to parse HTML: %w", err)
			}

			return printOutcome(analyze(doc, pageURL))
		},
	}

	cmd.Flags().IntVar(&flagTimeout, "timeout", 15, "Per-source fetch timeout in seconds")
	cmd.Flags().StringSliceVar(&flagRelays, "relay", nil, "Relay URL prefix tried after the direct fetch (repeatable)")

	return cmd
}

func newLowValueCmd() *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "lowvalue",
		Short: "Run the low-value content battery against text from a file or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput()
			if err != nil {
				return err
			}

			text := string(input)
			if asHTML {
				doc, err := htmlprocessor.Parse(input)
				if err != nil {
					return fmt.Errorf("failed to parse HTML: %w", err)
				}
				text = doc.VisibleText(true)
			}

			if err := analyzer.ValidateTextLength(text); err != nil {
				return err
			}

			return printOutcome(analyzer.AnalyzeTextQuality(text))
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "Treat the input as HTML and analyze its visible text")

	return cmd
}

func newHumanizeCmd() *cobra.Command {
	var toneName string
	var seed int64

	cmd := &cobra.Command{
		Use:   "humanize",
		Short: "Rewrite text toward a target tone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tone, err := rewriter.ParseTone(toneName)
			if err != nil {
				return err
			}

			input, err := readInput()
			if err != nil {
				return err
			}

			var rng *rand.Rand
			if seed != 0 {
				rng = rand.New(rand.NewSource(seed))
			}

			result := rewriter.New(rng).Rewrite(string(input), tone)

			if flagJSON {
				return printJSON(result)
			}

			fmt.Println(result.Text)
			fmt.Fprintf(os.Stderr, "words: %d -> %d (%d%% changed)\n",
				result.WordsBefore, result.WordsAfter, result.ChangePercent)
			return nil
		},
	}

	cmd.Flags().StringVar(&toneName, "tone", "casual", "Target tone: professional, casual or narrative")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for reproducible output (0 = time-based)")

	return cmd
}

// loadPage returns page HTML from -f when given, otherwise fetches pageURL.
func loadPage(ctx context.Context, pageURL string) ([]byte, error) {
	if flagFile != "" {
		return readInput()
	}
	if pageURL == "" {
		return nil, fmt.Errorf("either a URL argument or -f is required")
	}

	cfg := configtypes.FetchConfig{
		RelaySources:        flagRelays,
		PerSourceTimeoutSec: flagTimeout,
		MaxBodyBytes:        10 * 1024 * 1024,
	}

	fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(flagTimeout*3)*time.Second)
	defer cancel()

	return fetch.New(cfg, nil, zap.NewNop()).Fetch(fetchCtx, pageURL)
}

func readInput() ([]byte, error) {
	if flagFile == "" || flagFile == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(flagFile)
}

func printOutcome(outcome types.AnalysisOutcome) error {
	checks := outcome.Checks
	if flagOnly != "" {
		sel, err := pattern.Compile(flagOnly)
		if err != nil {
			return err
		}
		filtered := checks[:0:0]
		for _, check := range checks {
			if sel.Match(check.Name) {
				filtered = append(filtered, check)
			}
		}
		checks = filtered
	}

	if flagJSON {
		if flagOnly != "" {
			outcome.Checks = checks
		}
		return printJSON(outcome)
	}

	fmt.Printf("Score: %d/100  Tier: %s\n", outcome.Score, outcome.Tier)
	if outcome.TierSummary != "" {
		fmt.Println(outcome.TierSummary)
	}
	fmt.Println()

	for _, check := range checks {
		marker := map[types.Verdict]string{
			types.VerdictPass:    "✓",
			types.VerdictWarning: "!",
			types.VerdictFail:    "✗",
		}[check.Verdict]

		fmt.Printf("  %s %-22s %2d/%-2d  %s\n",
			marker, check.Name, check.Score, check.MaxScore, check.Message)
		if check.Suggestion != "" && check.Verdict != types.VerdictPass {
			fmt.Printf("    -> %s\n", check.Suggestion)
		}
	}
	return nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
