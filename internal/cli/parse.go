package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencapitol/gavel/internal/bio"
	"github.com/opencapitol/gavel/internal/model"
	"github.com/opencapitol/gavel/internal/pipeline"
	"github.com/opencapitol/gavel/internal/store"
	"github.com/opencapitol/gavel/internal/worker"
)

var (
	idsFile       string
	parseAll      bool
	workers       int
	committeeData string
	parseTimeout  time.Duration
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [jacket-id...]",
	Short: "Segment and attribute hearing transcripts in parallel",
	Long: `Parse loads hearings from the database, splits each transcript into
speaker statements, resolves each speaker against the biographical
tables, and writes the resolved statements back to the database.

Hearing ids follow the GPO jacket convention (e.g. CHRG-113jhrg79942).
Per-hearing failures are reported and skipped; the batch never aborts.

Example:
  gavel parse CHRG-113jhrg79942 CHRG-113shrg86391
  gavel parse --ids-file jackets.txt --workers 8
  gavel parse --all`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&idsFile, "ids-file", "", "file with hearing ids, one per line")
	parseCmd.Flags().BoolVar(&parseAll, "all", false, "parse every hearing in the database")
	parseCmd.Flags().IntVar(&workers, "workers", 0, "number of concurrent workers (default: CPU count)")
	parseCmd.Flags().StringVar(&committeeData, "committee-data", "committee_data.csv", "committee reference CSV")
	parseCmd.Flags().DurationVar(&parseTimeout, "timeout", 30*time.Minute, "total timeout for the batch")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}

	log, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
	defer cancel()

	st, err := store.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ids, err := gatherIDs(ctx, st, args)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("no hearing ids given: pass ids, --ids-file, or --all")
	}

	committees, err := model.LoadCommitteeMapping(committeeData)
	if err != nil {
		return err
	}

	members, err := st.Members(ctx)
	if err != nil {
		return err
	}
	index := bio.NewIndex(members)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Gavel Parse\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Hearings:     %d\n", len(ids))
	fmt.Fprintf(os.Stderr, "  Legislators:  %d\n", index.Len())
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "\n")

	p := pipeline.New(st, index, committees, log)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	summary := pipeline.NewSummary()

	results := processor.ProcessIDs(ctx, ids)
	for _, r := range results {
		if r.Error != nil {
			summary.AddSkipped(r.ID, r.Error)
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.ID, r.Error)
			continue
		}

		summary.AddParsed(len(r.Result.Statements))
		if err := st.SaveParsed(ctx, r.ID, r.Result.Statements); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.ID, err)
			continue
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ %s (%d statements)\n", r.ID, len(r.Result.Statements))
		}
	}

	summary.Log(log)

	parsed, empty, skipped := summary.Counts()
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Parse Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Parsed:    %d\n", parsed)
	fmt.Fprintf(os.Stderr, "  Empty:     %d\n", empty)
	fmt.Fprintf(os.Stderr, "  Skipped:   %d\n", skipped)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// gatherIDs resolves the hearing id list from args, --ids-file, or --all.
func gatherIDs(ctx context.Context, st *store.Store, args []string) ([]string, error) {
	switch {
	case parseAll:
		return st.HearingIDs(ctx)
	case idsFile != "":
		ids, err := worker.ReadIDsFromFile(idsFile)
		if err != nil {
			return nil, err
		}
		if err := worker.ValidateIDs(ids); err != nil {
			return nil, err
		}
		return ids, nil
	default:
		if err := worker.ValidateIDs(args); err != nil {
			return nil, err
		}
		return args, nil
	}
}
