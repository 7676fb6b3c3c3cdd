package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/conceptmap/cmapscore/internal/parser"
	"github.com/conceptmap/cmapscore/internal/report"
	"github.com/conceptmap/cmapscore/internal/runner"
	"github.com/conceptmap/cmapscore/internal/scoring"
)

var (
	scoreAlgorithms     []string
	scoreExpansionMode  string
	scoreCrossLinkScore int
	scoreStructureBonus int
	scoreSimpleOnly     bool
	scoreFormat         string
	scoreOut            string
)

var scoreCmd = &cobra.Command{
	Use:   "score <master.csv> <student.csv>",
	Short: "Score one student map against a master map",
	Long: `Score a student concept map against the master map.

By default every registered algorithm runs; restrict with --algorithm.
Options that an algorithm does not support are simply not passed to it.

Examples:
  cmapscore score master.csv student.csv
  cmapscore score master.csv student.csv --algorithm LEA --format json
  cmapscore score master.csv student.csv -a Novak --cross-link-score 2
  cmapscore score master.csv student.csv --expansion-mode qualifier --out results.md --format markdown`,
	Args: cobra.ExactArgs(2),
	RunE: runScore,
}

func init() {
	addScoringFlags(scoreCmd)
}

// addScoringFlags registers the flags shared by score and batch. Both
// commands bind the same variables; only one of them runs per invocation.
func addScoringFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&scoreAlgorithms, "algorithm", "a", nil, "algorithms to run (default all)")
	cmd.Flags().StringVar(&scoreExpansionMode, "expansion-mode", "", "multi-antecedent expansion: junction, qualifier or none")
	cmd.Flags().IntVar(&scoreCrossLinkScore, "cross-link-score", 0, "points per recognized conflict link (Novak)")
	cmd.Flags().IntVar(&scoreStructureBonus, "structure-bonus", scoring.DefaultStructureBonus, "points per structure group (Novak)")
	cmd.Flags().BoolVar(&scoreSimpleOnly, "simple-score-only", false, "skip precision/recall metrics (LEA)")
	cmd.Flags().StringVarP(&scoreFormat, "format", "f", "", "output format: text, json, markdown or csv")
	cmd.Flags().StringVarP(&scoreOut, "out", "o", "", "write output to file instead of stdout")
}

func runScore(cmd *cobra.Command, args []string) error {
	master, err := parser.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("load master map: %w", err)
	}
	student, err := parser.LoadFile(args[1])
	if err != nil {
		return fmt.Errorf("load student map: %w", err)
	}

	reqs, err := buildRequests(cmd, scoreAlgorithms)
	if err != nil {
		return err
	}

	r := runner.New(registry, slog.Default())
	execs := r.RunAll(context.Background(), reqs, master, student)
	logTimings(r)

	rep := &report.Report{
		Master:  master.Name,
		Student: student.Name,
		Entries: report.FromExecutions(execs),
	}

	format, out, closeOut, err := outputTarget(scoreFormat, scoreOut)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := report.Write(out, rep, format); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return failIfAllFailed(execs)
}

// buildRequests resolves the requested algorithm names (all registered ones
// when empty) and assembles each one's options from the score flags,
// passing only options the algorithm supports.
func buildRequests(cmd *cobra.Command, names []string) ([]runner.Request, error) {
	if len(names) == 0 {
		names = registry.Names()
	}

	reqs := make([]runner.Request, 0, len(names))
	for _, name := range names {
		algo, err := registry.Get(name)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, runner.Request{
			Algorithm: algo.Name(),
			Options:   optionsFor(cmd, algo),
		})
	}
	return reqs, nil
}

func optionsFor(cmd *cobra.Command, algo scoring.Algorithm) scoring.Options {
	specs := algo.SupportedOptions()
	opts := scoring.Options{}

	if _, ok := specs[scoring.OptExpansionMode]; ok {
		mode := scoreExpansionMode
		if mode == "" {
			mode = cfg.DefaultExpansionMode
		}
		if mode != "" {
			opts[scoring.OptExpansionMode] = mode
		}
	}
	if _, ok := specs[scoring.OptCrossLinkScore]; ok && cmd.Flags().Changed("cross-link-score") {
		opts[scoring.OptCrossLinkScore] = scoreCrossLinkScore
	}
	if _, ok := specs[scoring.OptStructureBonus]; ok && cmd.Flags().Changed("structure-bonus") {
		opts[scoring.OptStructureBonus] = scoreStructureBonus
	}
	if _, ok := specs[scoring.OptSimpleScoreOnly]; ok && scoreSimpleOnly {
		opts[scoring.OptSimpleScoreOnly] = true
	}
	return opts
}

// outputTarget resolves the format (falling back to the configured default)
// and the destination writer.
func outputTarget(formatFlag, outFlag string) (report.Format, io.Writer, func(), error) {
	name := formatFlag
	if name == "" {
		name = cfg.DefaultFormat
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		return "", nil, nil, err
	}

	if outFlag == "" {
		return format, os.Stdout, func() {}, nil
	}
	f, err := os.Create(outFlag)
	if err != nil {
		return "", nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return format, f, func() { _ = f.Close() }, nil
}

// logTimings reports per-algorithm run times at debug level.
func logTimings(r *runner.Runner) {
	for name, st := range r.Stats().Snapshot() {
		slog.Debug("algorithm timings",
			"algorithm", name, "runs", st.Count, "avg", st.Avg, "min", st.Min, "max", st.Max)
	}
}

// failIfAllFailed keeps partial failures visible in the report while still
// signaling total failure through the exit code.
func failIfAllFailed(execs []runner.Execution) error {
	if len(execs) == 0 {
		return nil
	}
	for _, e := range execs {
		if e.Err == nil {
			return nil
		}
	}
	return fmt.Errorf("all %d scoring runs failed", len(execs))
}
