package importer

import (
	"context"

	"github.com/mawuli/afrivoice/internal/domain"
	"github.com/mawuli/afrivoice/internal/logger"
)

// DefaultChunkSize keeps each insert request within the remote store's
// practical size limit.
const DefaultChunkSize = 50

// TaskStore is the slice of the task repository the importer needs.
type TaskStore interface {
	Create(ctx context.Context, task *domain.Task) error
	InsertBatch(ctx context.Context, tasks []*domain.Task) error
}

// writeChunked persists tasks in fixed-size chunks, submitted sequentially.
// The first failing chunk aborts the remainder; chunks already committed
// stay committed. Returns the number of tasks inserted.
func writeChunked(ctx context.Context, store TaskStore, tasks []*domain.Task, chunkSize int) (int, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	log := logger.FromContext(ctx)
	inserted := 0
	chunk := 0
	for start := 0; start < len(tasks); start += chunkSize {
		chunk++
		end := start + chunkSize
		if end > len(tasks) {
			end = len(tasks)
		}

		if err := store.InsertBatch(ctx, tasks[start:end]); err != nil {
			return inserted, &ChunkError{Chunk: chunk, Err: err}
		}
		inserted += end - start

		log.WithFields(logger.Fields{
			logger.FieldChunk: chunk,
			logger.FieldCount: end - start,
		}).Debug("Chunk inserted")
	}

	return inserted, nil
}
