package operator

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// maxAttempts bounds the transparent retry of actions that lose a
// serialization or deadlock race at the store.
const maxAttempts = 3

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
}

func NewOperator(s *storage.Storage, queue chan ActionItem) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = o.performOnce(item.ctx, item.action)
		if err == nil || !storage.IsRetryable(err) {
			break
		}
	}
	item.response <- ActionItemResponse{err: err}
}

// performOnce runs one action inside a fresh store transaction. The action
// either commits whole or leaves no trace.
func (o *Operator) performOnce(ctx context.Context, action actions.IAction) error {
	writer, err := o.storage.Write(ctx)
	if err != nil {
		return err
	}

	if err := action.Perform(ctx, writer); err != nil {
		_ = writer.Rollback(ctx)
		return err
	}

	return writer.Commit(ctx)
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
