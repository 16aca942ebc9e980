package importer

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path"
	"strings"
	"time"

	"github.com/mawuli/afrivoice/internal/domain"
	"github.com/mawuli/afrivoice/internal/logger"
	_ "golang.org/x/image/webp"
)

// asrTaskDescription is the fixed instruction attached to every task created
// from an archive image.
const asrTaskDescription = "Look at the image and describe what you see in your own words, speaking clearly in the target language."

// Progress is the mutable counter reported back to the caller once per
// archive entry. It exists only for the duration of one archive import.
type Progress struct {
	TotalFiles     int
	ProcessedFiles int
	Errors         int
	CurrentFile    string
	Message        string
}

// ProgressFunc receives a snapshot of the progress counter after every
// state change of the archive loop.
type ProgressFunc func(Progress)

// importArchive runs the ASR archive path: enumerate qualifying image
// entries, then per entry upload to object storage and insert one task.
// Entry failures are isolated and counted; the loop only terminates early
// if the archive itself cannot be opened or contains nothing usable.
func (imp *Importer) importArchive(ctx context.Context, batch domain.TaskBatch, upload Upload, onProgress ProgressFunc) (*Summary, error) {
	log := logger.FromContext(ctx)

	entries, err := extractImageEntries(upload.Data)
	if err != nil {
		return nil, err
	}

	if onProgress == nil {
		onProgress = func(Progress) {}
	}
	progress := Progress{TotalFiles: len(entries), Message: "reading archive"}
	onProgress(progress)

	summary := &Summary{TotalRows: len(entries)}
	for _, entry := range entries {
		progress.CurrentFile = entry.Name
		progress.Message = "uploading"
		onProgress(progress)

		imageURL, err := imp.uploadEntry(ctx, batch, entry)
		if err == nil {
			progress.Message = "inserting"
			onProgress(progress)
			err = imp.insertEntryTask(ctx, batch, entry, imageURL)
		}
		if err != nil {
			summary.Failed++
			progress.Errors++
			log.WithFields(logger.Fields{
				logger.FieldEntry: entry.Name,
				logger.FieldBatch: batch.BatchName,
			}).WithError(err).Error("Archive entry failed")
		} else {
			summary.Inserted++
		}

		progress.ProcessedFiles++
		onProgress(progress)
	}

	progress.CurrentFile = ""
	progress.Message = "complete"
	onProgress(progress)

	log.WithFields(logger.Fields{
		logger.FieldCount: summary.Inserted,
		"errors":          summary.Failed,
	}).Info("Archive import completed")

	return summary, nil
}

// uploadEntry reads one image entry, uploads it to object storage, and
// returns its public URL.
func (imp *Importer) uploadEntry(ctx context.Context, batch domain.TaskBatch, entry *zip.File) (string, error) {
	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open entry: %w", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return "", fmt.Errorf("failed to read entry: %w", err)
	}

	// Dimensions are informational only; an undecodable image still imports.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		logger.FromContext(ctx).WithFields(logger.Fields{
			logger.FieldEntry: entry.Name,
		}).WithError(err).Warn("Could not decode image header")
	}

	key := fmt.Sprintf("asr-task-images/%s/%d-%s",
		batch.CreatedBy, time.Now().UnixMilli(), sanitizeEntryName(entry.Name))

	contentType := imageContentType(entry.Name)
	if err := imp.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return imp.storage.GetURL(key), nil
}

// insertEntryTask inserts the task record for one uploaded image entry.
func (imp *Importer) insertEntryTask(ctx context.Context, batch domain.TaskBatch, entry *zip.File, imageURL string) error {
	task := &domain.Task{
		Type:     domain.TaskTypeASR,
		Language: batch.TargetLanguage,
		Priority: priorityOrDefault(batch.Priority),
		Status:   domain.TaskStatusPending,
		Content: domain.TaskContent{
			TaskTitle:       fmt.Sprintf("ASR Task: %s", entry.Name),
			TaskDescription: asrTaskDescription,
			ImageURL:        imageURL,
		},
		CreatedBy: batch.CreatedBy,
	}
	if err := imp.tasks.Create(ctx, task); err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func imageContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
