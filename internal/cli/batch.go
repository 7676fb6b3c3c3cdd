package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/conceptmap/cmapscore/internal/parser"
	"github.com/conceptmap/cmapscore/internal/report"
	"github.com/conceptmap/cmapscore/internal/runner"
)

var (
	batchConcurrency int
	batchNoProgress  bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <master.csv> <dir>",
	Short: "Grade a directory of student maps against a master map",
	Long: `Grade every student CSV in a directory against the master map.

Files are processed concurrently with a bounded worker pool. Unreadable
files are reported and skipped; they never abort the rest of the batch.

Examples:
  cmapscore batch master.csv ./submissions
  cmapscore batch master.csv ./submissions --algorithm LEA --format csv --out grades.csv
  cmapscore batch master.csv ./submissions --concurrency 8 --no-progress`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func init() {
	addScoringFlags(batchCmd)
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "files graded in parallel (default from config)")
	batchCmd.Flags().BoolVar(&batchNoProgress, "no-progress", false, "disable the progress display")
}

func runBatch(cmd *cobra.Command, args []string) error {
	master, err := parser.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("load master map: %w", err)
	}

	files, err := studentFiles(args[1])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no student CSV files in %s", args[1])
	}

	reqs, err := buildRequests(cmd, scoreAlgorithms)
	if err != nil {
		return err
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = cfg.BatchConcurrency
	}

	r := runner.New(registry, slog.Default())
	batch := r.StartBatch(context.Background(), master, files, reqs, concurrency)

	// Writing the report to stdout would fight the progress display, so
	// show progress only when the report goes to a file.
	if !batchNoProgress && scoreOut != "" {
		if err := showProgress(batch); err != nil {
			slog.Warn("progress display failed", "error", err)
		}
	}
	results := batch.Wait()
	logTimings(r)

	br := report.FromBatch(master.Name, results)

	format, out, closeOut, err := outputTarget(scoreFormat, scoreOut)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := report.WriteBatch(out, br, format); err != nil {
		return fmt.Errorf("write batch report: %w", err)
	}
	return nil
}

// studentFiles lists the CSV files in dir, sorted by name so batch results
// come out in a stable order.
func studentFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("scan student directory: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
