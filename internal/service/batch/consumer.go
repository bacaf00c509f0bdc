package batch

import (
	"context"
	"sync"

	"github.com/nkiryanov/modcheck/internal/logger"
)

type Consumer struct {
	countWorkers int

	validator validator
	logger    logger.Logger
}

// Consume validates jobs from in. Every worker writes only the result slots of its own jobs
func (c *Consumer) Consume(ctx context.Context, in <-chan job, results []Result) <-chan struct{} {
	idleStopped := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < c.countWorkers; i++ {
		wg.Add(1)
		go func() {
			c.worker(ctx, in, results)
			wg.Done()
		}()
	}

	go func() {
		defer close(idleStopped)
		wg.Wait()
		c.logger.Debug("Consumer stopped")
	}()

	return idleStopped
}

func (c *Consumer) worker(ctx context.Context, in <-chan job, results []Result) {
	for {
		select {
		case <-ctx.Done():
			return

		case j, ok := <-in:
			if !ok {
				return
			}

			res, err := c.validator.Validate(ctx, j.item.SortCode, j.item.AccountNumber)
			if err != nil {
				c.logger.Debug("Item not validated", "error", err, "index", j.index, "sort_code", j.item.SortCode, logger.AccountNumberKey, j.item.AccountNumber)
			}
			results[j.index] = Result{Item: j.item, CheckResult: res, Err: err}
		}
	}
}
