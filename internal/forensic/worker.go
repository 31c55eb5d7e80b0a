package forensic

import "context"

// Worker consumes audit records from a channel and persists them through the
// publisher. Because the storage is single-writer, funneling all producers
// through one worker goroutine is how concurrent callers get serialized
// appends - and with them, a verifiable hash chain.
type Worker struct {
	publisher *Publisher
	inbox     <-chan *AuditRecord
}

func NewWorker(publisher *Publisher, inbox <-chan *AuditRecord) *Worker {
	return &Worker{publisher: publisher, inbox: inbox}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case record := <-w.inbox:
			if err := w.publisher.Emit(ctx, record); err != nil {
				return err
			}
		}
	}
}
