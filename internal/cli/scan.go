package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dshills/githuntr/internal/config"
	"github.com/dshills/githuntr/internal/gitrepo"
	"github.com/dshills/githuntr/internal/output"
	"github.com/dshills/githuntr/internal/scan"
)

// Scan flags
var (
	flagRepo          string
	flagFilenameRegex string
	flagContentRegex  string
	flagEntropy       bool
	flagHistory       bool
	flagMaxCommits    int
	flagOut           string
	flagFormat        string
	flagWorkers       int
	flagVerbose       bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a repository for leaked secrets and matching files",
	Long: `Scan clones the repository into a temporary directory, searches every
branch for filename matches, content matches, and high-entropy secret
candidates, and optionally walks the full commit history. Results are
written as a JSON report to a file or stdout.`,
	Example: `  # Files with "token" anywhere in the name, on every branch
  githuntr scan -r https://github.com/org/repo -f ".*token.*"

  # Content matches plus entropy analysis, through the last 100 commits
  githuntr scan -r https://github.com/org/repo -c "api_key" -e --history --max-commits 100`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode = runScan(cmd.Flags())
	},
}

func init() {
	registerScanFlags(scanCmd.Flags())
	_ = scanCmd.MarkFlagRequired("repo")
}

func registerScanFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&flagRepo, "repo", "r", "", "URL of the repository to scan (required)")
	fs.StringVarP(&flagFilenameRegex, "filename-regex", "f", "", "Regex to match filenames")
	fs.StringVarP(&flagContentRegex, "content-regex", "c", "", "Regex to match file content")
	fs.BoolVarP(&flagEntropy, "entropy", "e", false, "Perform entropy analysis (slow)")
	fs.BoolVar(&flagHistory, "history", false, "Search through commit history")
	fs.IntVar(&flagMaxCommits, "max-commits", 0, "Maximum number of commits to search (0 = all)")
	fs.StringVarP(&flagOut, "output", "o", "", "File to write the report to (default: stdout)")
	fs.StringVar(&flagFormat, "format", "", "Output format (json, text)")
	fs.IntVar(&flagWorkers, "workers", 0, "Concurrent branch/commit workers")
	fs.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// mergeFlags overlays flags the user actually set onto the loaded
// configuration. Changed, not the value, decides whether a flag wins, so an
// explicit --max-commits 0 can reset a config-file bound back to unbounded.
func mergeFlags(cfg config.Config, fs *pflag.FlagSet) config.Config {
	cfg.RepoURL = flagRepo
	cfg.OutputPath = flagOut
	if flagFilenameRegex != "" {
		cfg.FilenamePattern = flagFilenameRegex
	}
	if flagContentRegex != "" {
		cfg.ContentPattern = flagContentRegex
	}
	if fs.Changed("entropy") {
		cfg.Entropy = flagEntropy
	}
	if fs.Changed("history") {
		cfg.History = flagHistory
	}
	if fs.Changed("max-commits") {
		cfg.MaxCommits = flagMaxCommits
	}
	if fs.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if flagFormat != "" {
		cfg.Format = flagFormat
	}
	return cfg
}

func runScan(fs *pflag.FlagSet) int {
	if flagVerbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		color.Red("Error: %v", err)
		return ExitError
	}
	cfg = mergeFlags(cfg, fs)

	matcher, err := cfg.Compile()
	if err != nil {
		color.Red("Error: %v", err)
		color.Yellow(`Tips for common patterns:
- For substring match: 'token'
- For wildcard match: '.*token.*'
- For file extensions: '.*\.txt$'
- For exact match: '^token$'`)
		return ExitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	color.Cyan("Cloning repository %s...", cfg.RepoURL)
	repo, err := gitrepo.Clone(ctx, cfg.RepoURL)
	if err != nil {
		color.Red("Error cloning repository: %v", err)
		if errors.Is(err, context.Canceled) {
			return ExitError
		}
		color.Yellow(`Make sure you have:
1. Valid authentication set up in your terminal
2. Access rights to the repository
3. The correct repository URL (HTTPS or SSH matching your auth method)`)
		return ExitError
	}
	defer repo.Close()

	coordinator := scan.NewCoordinator(repo, scan.Config{
		Repo:       cfg.RepoURL,
		Matcher:    matcher,
		Entropy:    cfg.Entropy,
		History:    cfg.History,
		MaxCommits: cfg.MaxCommits,
		Workers:    cfg.Workers,
	})
	report, err := coordinator.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			color.Yellow("Scan cancelled")
		} else {
			color.Red("Error: %v", err)
		}
		return ExitError
	}

	if err := output.WriteReport(report, cfg.Format, cfg.OutputPath); err != nil {
		color.Red("Error: %v", err)
		return ExitError
	}
	if cfg.OutputPath != "" {
		color.Green("Results written to %s", cfg.OutputPath)
	}
	return ExitSuccess
}
