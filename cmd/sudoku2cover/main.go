// sudoku2cover solves a single Sudoku puzzle by encoding it as an
// exact-cover instance and handing it to the same engine cmd/xcover drives
// from a matrix file — a worked example of the engine's generality.
package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"xcover/internal/sudoku"
	"xcover/internal/xcover"
)

type cliArgs struct {
	In string `arg:"--in,required" help:"file holding 9 rows of 9 characters, '.' or '0' for blank cells"`
}

func (cliArgs) Description() string {
	return "Solve a Sudoku puzzle via the exact-cover search engine."
}

func main() {
	var args cliArgs
	arg.MustParse(&args)

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := run(args, logger); err != nil {
		logger.Error("sudoku2cover failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args cliArgs, logger *zap.Logger) error {
	raw, err := os.ReadFile(args.In)
	if err != nil {
		return errors.Wrapf(err, "reading %s", args.In)
	}
	puzzle, err := sudoku.ParseGrid(string(raw))
	if err != nil {
		return errors.Wrap(err, "parsing puzzle")
	}

	inst, placements, err := sudoku.Encode(puzzle)
	if err != nil {
		return errors.Wrap(err, "encoding puzzle as exact cover")
	}
	logger.Info("encoded puzzle",
		zap.Int("items", inst.NItems),
		zap.Int("options", inst.NOptions),
	)

	ctx := xcover.NewSearchContext(inst)
	var solved sudoku.Grid
	found := false
	xcover.Solve(ctx, xcover.SolveConfig{
		MaxSolutions: 1,
		Visit: func(_ *xcover.SearchContext, _ int, _ int64, options []int) {
			solved = sudoku.Decode(placements, options)
			found = true
		},
	})

	if !found {
		fmt.Println("no solution")
		return nil
	}
	fmt.Print(solved.String())
	return nil
}
