// Command importer performs an offline bulk task import from a local file,
// bypassing the HTTP surface. Useful for seeding large batches.
package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/mawuli/afrivoice/internal/config"
	"github.com/mawuli/afrivoice/internal/domain"
	"github.com/mawuli/afrivoice/internal/importer"
	"github.com/mawuli/afrivoice/internal/logger"
	"github.com/mawuli/afrivoice/internal/repository"
	"github.com/mawuli/afrivoice/internal/storage"
)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "afrivoice-importer",
	})
	logger.SetDefaultLogger(appLogger)

	filePath := flag.String("file", "", "Path to the file to import (csv, xlsx, or zip)")
	taskType := flag.String("type", "", "Task type: asr, tts, translation, transcription")
	batchName := flag.String("batch", "", "Batch name stamped onto every created task")
	targetLanguage := flag.String("target-language", "", "Target language for created tasks")
	sourceLanguage := flag.String("source-language", "", "Source language (translation batches only)")
	priority := flag.String("priority", "medium", "Task priority: low, medium, high")
	createdBy := flag.String("user", "", "User ID the tasks are attributed to")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	if *filePath == "" || *taskType == "" || *batchName == "" || *targetLanguage == "" || *createdBy == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	objectStorage, err := storage.NewS3Storage(&storage.S3Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize storage")
	}

	ctx := context.Background()
	if err := objectStorage.EnsureBucket(ctx); err != nil {
		appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to read input file")
	}

	imp := importer.New(
		repository.NewTaskRepository(db),
		repository.NewImportJobRepository(db),
		objectStorage,
		&importer.Config{ChunkSize: cfg.Import.ChunkSize},
	)

	batch := domain.TaskBatch{
		BatchName:      *batchName,
		TaskType:       domain.TaskType(*taskType),
		TargetLanguage: *targetLanguage,
		SourceLanguage: *sourceLanguage,
		Priority:       domain.TaskPriority(*priority),
		CreatedBy:      *createdBy,
	}
	upload := importer.Upload{
		FileName:  filepath.Base(*filePath),
		MediaType: mediaTypeFor(*filePath),
		Data:      data,
	}

	printedProgress := false
	summary, err := imp.Run(ctx, batch, upload, func(p importer.Progress) {
		if p.CurrentFile != "" {
			fmt.Printf("\r%d/%d %s", p.ProcessedFiles, p.TotalFiles, p.CurrentFile)
			printedProgress = true
		}
	})
	if printedProgress {
		fmt.Println()
	}
	if err != nil {
		appLogger.WithError(err).Fatal("Import failed")
	}

	appLogger.WithFields(logger.Fields{
		"job_id":   summary.JobID,
		"total":    summary.TotalRows,
		"inserted": summary.Inserted,
		"skipped":  summary.Skipped,
		"failed":   summary.Failed,
	}).Info("Import completed")
}

// mediaTypeFor resolves the declared media type from the file extension,
// with fallbacks for hosts lacking a mime.types database.
func mediaTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	switch ext {
	case ".csv":
		return "text/csv"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".xls":
		return "application/vnd.ms-excel"
	}
	return ""
}
