package replay

import (
	"context"
	"path/filepath"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/engine"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
	"github.com/bitmato-studio/bitmato-chess/internal/worker"
)

// Result is the outcome of replaying one record.
type Result struct {
	Name       string
	Board      *chess.Board
	Applied    int
	Rejections []error // *errors.MoveError with Ply set
}

// Replay plays every move of rec from its start position. Rejected moves
// are collected and skipped; the replay carries on with the next move.
func Replay(rec *chess.GameRecord, rules engine.Rules) (*Result, error) {
	start := rec.Start
	if start == "" {
		start = engine.DefaultNotation
	}
	board, err := engine.Decode(start)
	if err != nil {
		return nil, errors.Wrapf(err, "record %s", rec.Name)
	}

	res := &Result{Name: rec.Name, Board: board}
	for i, m := range rec.Moves {
		err := rules.Move(board, m.From, m.To)
		if err == nil {
			res.Applied++
			continue
		}
		var me *errors.MoveError
		if errors.As(err, &me) {
			me.Ply = i + 1
		}
		res.Rejections = append(res.Rejections, err)
	}
	return res, nil
}

// ProcessFunc returns a worker.ProcessFunc that loads (when needed) and
// replays a record under rules.
func ProcessFunc(rules engine.Rules) worker.ProcessFunc {
	return func(item worker.WorkItem) worker.ProcessResult {
		out := worker.ProcessResult{Index: item.Index, Name: filepath.Base(item.Path)}

		rec := item.Record
		if rec == nil {
			var err error
			if rec, err = ParseFile(item.Path); err != nil {
				out.Error = err
				return out
			}
		}
		out.Name = rec.Name

		res, err := Replay(rec, rules)
		if err != nil {
			out.Error = err
			return out
		}
		out.Board = res.Board
		out.Applied = res.Applied
		out.Rejections = res.Rejections
		return out
	}
}

// Files replays record files on a pool of workers and returns the results
// in input order.
func Files(ctx context.Context, paths []string, rules engine.Rules, workers int) []worker.ProcessResult {
	pool := worker.NewPool(ProcessFunc(rules), worker.WithWorkers(workers), worker.WithBufferSize(2*workers))
	pool.Start()

	items := make([]worker.WorkItem, len(paths))
	for i, p := range paths {
		items[i] = worker.WorkItem{Path: p}
	}
	return pool.Run(ctx, items)
}
