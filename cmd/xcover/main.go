// xcover solves an exact-cover instance described by a textual incidence
// matrix, splitting the search across local worker goroutines and, when
// run under multiple processes, across a cluster (spec.md §6).
package main

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"xcover/internal/cluster"
	"xcover/internal/matrixfile"
	"xcover/internal/report"
	"xcover/internal/xcover"
)

type cliArgs struct {
	In             string `arg:"--in,required" help:"matrix file to load"`
	ProgressReport int64  `arg:"--progress-report" help:"emit progress roughly every N nodes (0 disables)"`
	PrintSolutions bool   `arg:"--print-solutions" help:"print each solution as it is found"`
	StopAfter      int64  `arg:"--stop-after" help:"soft-stop after N solutions per task"`
	Workers        int    `arg:"--workers" help:"worker goroutines in this process (0 = NumCPU)"`
	Rank           int    `arg:"--rank" help:"this process's rank in the cluster"`
	Size           int    `arg:"--size" help:"total number of processes in the cluster"`
	Peers          string `arg:"--peers" help:"comma-separated host:port list, index 0 is rank 0's address; required when --size > 1"`
}

func (cliArgs) Description() string {
	return "Parallel exact-cover solver: enumerates subsets of options covering every primary item exactly once and every secondary item at most once."
}

func main() {
	var args cliArgs
	args.ProgressReport = 1_000_000
	args.StopAfter = math.MaxInt64
	arg.MustParse(&args)

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := run(args, logger); err != nil {
		logger.Error("xcover failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args cliArgs, logger *zap.Logger) error {
	f, err := os.Open(args.In)
	if err != nil {
		return errors.Wrapf(err, "opening %s", args.In)
	}
	defer f.Close()

	inst, err := matrixfile.Parse(f)
	if err != nil {
		return errors.Wrap(err, "parsing matrix file")
	}
	logger.Info("loaded instance",
		zap.Int("items", inst.NItems),
		zap.Int("primary", inst.NPrimary),
		zap.Int("options", inst.NOptions),
	)

	reducer, err := buildReducer(args)
	if err != nil {
		return err
	}

	start := time.Now()
	cfg := xcover.SolveConfig{
		ReportEvery:  args.ProgressReport,
		MaxSolutions: args.StopAfter,
		Report: func(_ *xcover.SearchContext, nodes, solutions int64, childNum, numChildren []int, _ int) {
			report.Progress(os.Stdout, nodes, solutions, time.Since(start), childNum, numChildren)
		},
	}
	if args.PrintSolutions {
		cfg.Visit = func(_ *xcover.SearchContext, level int, nodes int64, options []int) {
			report.Solution(os.Stdout, inst, level, nodes, options)
		}
	}

	workers := args.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	ctx := xcover.NewSearchContext(inst)
	local := xcover.RunLocal(ctx, cfg, workers, reducer.Rank(), reducer.Size(), xcover.DefaultTaskBudget)

	total, isCoordinator, err := reducer.ReduceSum(local)
	if err != nil {
		return errors.Wrap(err, "reducing solution counts across the cluster")
	}
	if isCoordinator {
		report.Done(os.Stdout, total, time.Since(start))
	}
	return nil
}

// buildReducer picks the single-process Local reducer when --size <= 1 and
// the TCP reducer over --peers otherwise.
func buildReducer(args cliArgs) (cluster.Reducer, error) {
	if args.Size <= 1 {
		return cluster.NewLocalCluster(1)[0], nil
	}
	if args.Peers == "" {
		return nil, errors.New("--peers is required when --size > 1")
	}
	peers := strings.Split(args.Peers, ",")
	if len(peers) != args.Size {
		return nil, errors.Errorf("--peers lists %d addresses, want %d (== --size)", len(peers), args.Size)
	}
	if args.Rank < 0 || args.Rank >= args.Size {
		return nil, errors.Errorf("--rank %d out of range [0,%d)", args.Rank, args.Size)
	}
	listenAddr := peers[args.Rank]
	coordinator := peers[0]
	return cluster.NewTCP(args.Rank, args.Size, listenAddr, coordinator, 30*time.Second), nil
}
