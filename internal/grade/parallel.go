package grade

import (
	"context"

	"golang.org/x/sync/errgroup"

	"wirelab/internal/logging"
	"wirelab/internal/worksheet"
)

// GradeBatch grades several answer sheets against one worksheet using a
// bounded worker pool. Results keep sheet order. Grading trouble lands in
// each Result's Errors, so the only way a slot stays nil is cancellation
// before its worker started.
func GradeBatch(ctx context.Context, ws *worksheet.Worksheet, sheets []*AnswerSheet, parallel int) []*Result {
	if parallel < 1 {
		parallel = 1
	}
	logger := logging.New("grade")
	logger.Info("grading batch", "worksheet", ws.Name, "sheets", len(sheets), "workers", parallel)

	results := make([]*Result, len(sheets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, sheet := range sheets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Grade(ws, sheet)
			return nil
		})
	}
	_ = g.Wait() // per-sheet trouble is captured in Result.Errors

	return results
}
