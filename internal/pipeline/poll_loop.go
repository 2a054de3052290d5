package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/freifahren/sichtungskern/internal/chat"
)

// FanOut runs a single poll loop against a chat.Poller and publishes each
// update to the returned channel for a WorkerPool to drain. Poll errors are
// logged and the loop keeps going; a poll error is not a reason to stop
// ingesting chat traffic. The channel is closed once ctx is canceled.
func FanOut(ctx context.Context, poller chat.Poller, buffer int, log zerolog.Logger) <-chan chat.Update {
	updates := make(chan chat.Update, buffer)

	go func() {
		defer close(updates)
		for {
			update, err := poller.Next(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Warn().Err(err).Msg("chat poll failed")
				continue
			}
			select {
			case updates <- update:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates
}
