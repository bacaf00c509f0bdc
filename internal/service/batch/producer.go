package batch

import (
	"context"

	"github.com/nkiryanov/modcheck/internal/logger"
)

type Producer struct {
	logger logger.Logger
}

// Produce sends items to out and closes it when done
func (p *Producer) Produce(ctx context.Context, items []Item, out chan<- job) <-chan struct{} {
	idleStopped := make(chan struct{})
	p.logger.Debug("Starting producer", "items", len(items))

	go func() {
		defer close(idleStopped)
		defer close(out)

		for i, item := range items {
			select {
			case <-ctx.Done():
				p.logger.Debug("Producer stopped by context while sending items")
				return
			case out <- job{index: i, item: item}:
			}
		}
	}()

	return idleStopped
}
