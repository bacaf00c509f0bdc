package reqctx

import (
	"context"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// Create a new context with the request id
func New(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// Extract the request id from the context
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

const summaryKey ctxKey = "summary"

// Summary is what a handler checked, filled while serving and logged after
type Summary struct {
	SortCode string
	Accounts int
}

// Create a new context with an empty summary
func WithSummary(ctx context.Context) (context.Context, *Summary) {
	s := &Summary{}
	return context.WithValue(ctx, summaryKey, s), s
}

// Record the checked sort code and number of accounts. No-op without a summary in context
func Record(ctx context.Context, sortCode string, accounts int) {
	s, ok := ctx.Value(summaryKey).(*Summary)
	if !ok {
		return
	}
	s.SortCode = sortCode
	s.Accounts = accounts
}
