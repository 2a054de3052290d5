package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/freifahren/sichtungskern/internal/chat"
	"github.com/freifahren/sichtungskern/internal/errs"
)

// WorkerPool consumes chat updates off a channel with a bounded number of
// concurrent goroutines, running each through a Chain. Grounded on the
// teacher's cmd/main.go goroutine+errChan+signalChan shutdown pattern
// (one goroutine per long-running loop, a shared error channel, a select
// against context cancellation) generalized from "one goroutine per
// server" to "N goroutines draining one channel".
type WorkerPool struct {
	chain   *Chain
	workers int
	log     zerolog.Logger
}

func NewWorkerPool(chain *Chain, workers int, log zerolog.Logger) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{chain: chain, workers: workers, log: log}
}

// Run drains updates until ctx is canceled or the channel closes, fanning
// each update out to one of p.workers goroutines. It blocks until every
// in-flight update has finished processing.
func (p *WorkerPool) Run(ctx context.Context, updates <-chan chat.Update) {
	var wg sync.WaitGroup
	wg.Add(p.workers)

	for i := 0; i < p.workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case update, ok := <-updates:
					if !ok {
						return
					}
					p.process(ctx, update)
				}
			}
		}()
	}

	wg.Wait()
}

func (p *WorkerPool) process(ctx context.Context, update chat.Update) {
	state := &State{
		Text:    update.Text,
		Now:     time.Now(),
		Author:  update.AuthorID,
		Message: &update.Text,
	}

	result, err := p.chain.Run(ctx, state)
	if err != nil {
		errs.LogAndDrop(p.log, "pipeline_error", err)
		return
	}
	if result.Done && result.DropReason != "" {
		errs.LogAndDrop(p.log, result.DropReason, nil)
	}
}
