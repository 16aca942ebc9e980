package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mawuli/afrivoice/internal/domain"
)

// fakeTaskStore records insert calls and can fail a specific chunk.
type fakeTaskStore struct {
	batchSizes []int
	created    []*domain.Task
	failChunk  int // 1-based; 0 means never fail
	failCreate map[string]bool
}

func (f *fakeTaskStore) InsertBatch(ctx context.Context, tasks []*domain.Task) error {
	if f.failChunk > 0 && len(f.batchSizes)+1 == f.failChunk {
		return fmt.Errorf("remote store rejected request")
	}
	f.batchSizes = append(f.batchSizes, len(tasks))
	return nil
}

func (f *fakeTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if f.failCreate[task.Content.TaskTitle] {
		return fmt.Errorf("remote store rejected record")
	}
	f.created = append(f.created, task)
	return nil
}

func makeTasks(n int) []*domain.Task {
	tasks := make([]*domain.Task, n)
	for i := range tasks {
		tasks[i] = &domain.Task{
			Type:     domain.TaskTypeTTS,
			Language: "Akan",
			Content:  domain.TaskContent{TextToSpeak: fmt.Sprintf("line %d", i)},
		}
	}
	return tasks
}

func TestWriteChunked(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name      string
		tasks     int
		chunkSize int
		wantCalls []int
	}{
		{name: "exact multiple", tasks: 100, chunkSize: 50, wantCalls: []int{50, 50}},
		{name: "remainder chunk", tasks: 120, chunkSize: 50, wantCalls: []int{50, 50, 20}},
		{name: "single small chunk", tasks: 7, chunkSize: 50, wantCalls: []int{7}},
		{name: "zero tasks", tasks: 0, chunkSize: 50, wantCalls: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeTaskStore{}
			inserted, err := writeChunked(ctx, store, makeTasks(tc.tasks), tc.chunkSize)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if inserted != tc.tasks {
				t.Errorf("inserted: got %d, want %d", inserted, tc.tasks)
			}
			if len(store.batchSizes) != len(tc.wantCalls) {
				t.Fatalf("calls: got %v, want %v", store.batchSizes, tc.wantCalls)
			}
			sum := 0
			for i, size := range store.batchSizes {
				if size != tc.wantCalls[i] {
					t.Errorf("chunk %d: got %d, want %d", i+1, size, tc.wantCalls[i])
				}
				sum += size
			}
			if sum != tc.tasks {
				t.Errorf("chunk sizes sum to %d, want %d", sum, tc.tasks)
			}
		})
	}
}

func TestWriteChunkedAbortsOnFailure(t *testing.T) {
	ctx := context.Background()

	// 250 tasks in chunks of 50; chunk 3 fails: chunks 1-2 stand, 4-5 never run.
	store := &fakeTaskStore{failChunk: 3}
	inserted, err := writeChunked(ctx, store, makeTasks(250), 50)

	var chunkErr *ChunkError
	if !errors.As(err, &chunkErr) {
		t.Fatalf("expected ChunkError, got %v", err)
	}
	if chunkErr.Chunk != 3 {
		t.Errorf("failing chunk: got %d, want 3", chunkErr.Chunk)
	}
	if inserted != 100 {
		t.Errorf("inserted before failure: got %d, want 100", inserted)
	}
	if len(store.batchSizes) != 2 {
		t.Errorf("successful calls: got %d, want 2", len(store.batchSizes))
	}
}
