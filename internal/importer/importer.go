// Package importer turns one uploaded file (delimited text, spreadsheet, or
// ZIP of images) into persisted task records for a batch: classify and parse
// the file, map rows or archive entries to task payloads, and write them to
// the store in fixed-size chunks. All remote calls run sequentially; a chunk
// failure aborts the remainder while committed chunks stand.
package importer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mawuli/afrivoice/internal/domain"
	"github.com/mawuli/afrivoice/internal/logger"
	"github.com/mawuli/afrivoice/internal/storage"
)

// JobStore persists import job records around a run. A nil JobStore disables
// job tracking (used by tests).
type JobStore interface {
	Create(ctx context.Context, job *domain.ImportJob) error
	Update(ctx context.Context, job *domain.ImportJob) error
}

// Importer orchestrates one bulk import operation.
type Importer struct {
	tasks     TaskStore
	jobs      JobStore
	storage   storage.ObjectStorage
	chunkSize int
}

// Config holds importer settings.
type Config struct {
	ChunkSize int
}

// New creates an Importer.
func New(tasks TaskStore, jobs JobStore, objectStorage storage.ObjectStorage, cfg *Config) *Importer {
	chunkSize := DefaultChunkSize
	if cfg != nil && cfg.ChunkSize > 0 {
		chunkSize = cfg.ChunkSize
	}
	return &Importer{
		tasks:     tasks,
		jobs:      jobs,
		storage:   objectStorage,
		chunkSize: chunkSize,
	}
}

// Summary is the aggregate outcome of one import run.
type Summary struct {
	JobID     string `json:"job_id,omitempty"`
	TotalRows int    `json:"total_rows"`
	Inserted  int    `json:"inserted"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}

// Run executes one import: parse, map, persist. The batch must carry a
// resolved identity; without one no file is read. Progress callbacks fire
// only on the archive path, which has observable intermediate states.
func (imp *Importer) Run(ctx context.Context, batch domain.TaskBatch, upload Upload, onProgress ProgressFunc) (*Summary, error) {
	if batch.CreatedBy == "" {
		return nil, ErrNoIdentity
	}
	if !batch.TaskType.Valid() {
		return nil, ErrInvalidTaskType
	}

	job := imp.startJob(ctx, batch, upload)
	if job != nil {
		ctx = logger.SetJobID(ctx, job.ID)
	}

	summary, err := imp.run(ctx, batch, upload, onProgress)
	imp.finishJob(ctx, job, summary, err)
	if summary != nil && job != nil {
		summary.JobID = job.ID
	}
	return summary, err
}

func (imp *Importer) run(ctx context.Context, batch domain.TaskBatch, upload Upload, onProgress ProgressFunc) (*Summary, error) {
	kind, err := classify(upload, batch.TaskType)
	if err != nil {
		return nil, err
	}

	if kind == kindArchive {
		return imp.importArchive(ctx, batch, upload, onProgress)
	}

	rows, err := ParseRows(ctx, upload, batch.TaskType)
	if err != nil {
		return nil, err
	}

	tasks, skipped, err := MapRows(ctx, rows, batch)
	if err != nil {
		return &Summary{TotalRows: len(rows), Skipped: skipped}, err
	}

	inserted, err := writeChunked(ctx, imp.tasks, tasks, imp.chunkSize)
	summary := &Summary{
		TotalRows: len(rows),
		Inserted:  inserted,
		Skipped:   skipped,
		Failed:    len(tasks) - inserted,
	}
	if err != nil {
		return summary, err
	}

	logger.FromContext(ctx).WithFields(logger.Fields{
		logger.FieldBatch:    batch.BatchName,
		logger.FieldTaskType: string(batch.TaskType),
		logger.FieldCount:    inserted,
		"skipped":            skipped,
	}).Info("Import completed")

	return summary, nil
}

func (imp *Importer) startJob(ctx context.Context, batch domain.TaskBatch, upload Upload) *domain.ImportJob {
	if imp.jobs == nil {
		return nil
	}
	now := time.Now()
	job := &domain.ImportJob{
		ID:        uuid.New().String(),
		FileName:  upload.FileName,
		TaskType:  batch.TaskType,
		BatchName: batch.BatchName,
		Status:    domain.ImportJobRunning,
		CreatedBy: batch.CreatedBy,
		StartedAt: &now,
	}
	if err := imp.jobs.Create(ctx, job); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("Failed to record import job")
		return nil
	}
	return job
}

func (imp *Importer) finishJob(ctx context.Context, job *domain.ImportJob, summary *Summary, runErr error) {
	if imp.jobs == nil || job == nil {
		return
	}
	now := time.Now()
	job.CompletedAt = &now
	if summary != nil {
		job.TotalRows = summary.TotalRows
		job.InsertedTasks = summary.Inserted
		job.SkippedRows = summary.Skipped
		job.FailedEntries = summary.Failed
	}
	if runErr != nil {
		job.Status = domain.ImportJobFailed
		job.ErrorLog = runErr.Error()
	} else {
		job.Status = domain.ImportJobCompleted
	}
	if err := imp.jobs.Update(ctx, job); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("Failed to update import job")
	}
}
