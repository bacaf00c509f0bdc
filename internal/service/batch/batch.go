// Package batch validates many accounts with a fixed number of workers.
package batch

import (
	"context"

	"github.com/nkiryanov/modcheck/internal/logger"
	"github.com/nkiryanov/modcheck/internal/models"
)

const defaultCountWorkers = 8

type validator interface {
	Validate(ctx context.Context, sortCode string, accountNumber string) (models.CheckResult, error)
}

type Item struct {
	SortCode      string
	AccountNumber string
}

type Result struct {
	Item
	models.CheckResult

	// Error returned by validator for the item
	Err error
}

// job carries the item position so results keep request order
type job struct {
	index int
	item  Item
}

type Processor struct {
	producer *Producer
	consumer *Consumer
}

type Option func(*Processor)

func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.consumer.countWorkers = n
		}
	}
}

func New(v validator, l logger.Logger, opts ...Option) *Processor {
	p := &Processor{
		producer: &Producer{logger: l},
		consumer: &Consumer{
			countWorkers: defaultCountWorkers,
			validator:    v,
			logger:       l,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process validates every item. Results are in the same order as items.
// Returns context error if ctx is done before all items are validated.
func (p *Processor) Process(ctx context.Context, items []Item) ([]Result, error) {
	results := make([]Result, len(items))
	jobs := make(chan job)

	producerStopped := p.producer.Produce(ctx, items, jobs)
	consumerStopped := p.consumer.Consume(ctx, jobs, results)

	<-producerStopped
	<-consumerStopped

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
