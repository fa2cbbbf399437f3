package report

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/dot11dec/internal/capture"
	"github.com/danmuck/dot11dec/internal/dot11"
	"golang.org/x/sync/errgroup"
)

// Run decodes every record from src on workers goroutines and hands results to
// sink in capture order. Record indexes must start at 1 and be contiguous.
// Decode failures and *capture.PacketError records are results, not errors;
// Run only fails on other source errors, sink errors or cancellation.
func Run(ctx context.Context, src capture.Source, workers int, sink func(Result) error) error {
	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	records := make(chan job, workers)
	results := make(chan Result, workers)

	g.Go(func() error {
		defer close(records)
		for {
			rec, err := src.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			var perr *capture.PacketError
			if errors.As(err, &perr) {
				rec = capture.Record{Index: perr.Index}
			} else if err != nil {
				return fmt.Errorf("read record: %w", err)
			}
			select {
			case records <- job{rec: rec, err: err}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	var decoders errgroup.Group
	for i := 0; i < workers; i++ {
		decoders.Go(func() error {
			for j := range records {
				res := Result{Record: j.rec, Err: j.err}
				if j.err == nil {
					res.Frame, res.Err = dot11.Decode(j.rec.Data)
				}
				select {
				case results <- res:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return decoders.Wait()
	})

	g.Go(func() error {
		pending := make(map[int]Result)
		next := 1
		for res := range results {
			pending[res.Record.Index] = res
			for {
				r, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if err := sink(r); err != nil {
					return fmt.Errorf("report record %d: %w", r.Record.Index, err)
				}
			}
		}
		return nil
	})

	return g.Wait()
}

type job struct {
	rec capture.Record
	err error
}
