package importer

import (
	"context"
	"fmt"

	"github.com/mawuli/afrivoice/internal/domain"
	"github.com/mawuli/afrivoice/internal/logger"
)

// MapRows transforms parsed rows into insertable tasks, one pass, dropping
// rows that miss the task type's required field. Skipped rows never abort
// the batch; an empty result does.
func MapRows(ctx context.Context, rows []ParsedRow, batch domain.TaskBatch) ([]*domain.Task, int, error) {
	log := logger.FromContext(ctx)

	if batch.TaskType == domain.TaskTypeTranslation &&
		batch.SourceLanguage != "" && batch.SourceLanguage == batch.TargetLanguage {
		return nil, 0, ErrSameLanguage
	}

	tasks := make([]*domain.Task, 0, len(rows))
	skipped := 0

	for i, row := range rows {
		index := i + 1
		task, reason := mapRow(row, batch, index)
		if task == nil {
			skipped++
			log.WithFields(logger.Fields{
				logger.FieldRow:   index,
				logger.FieldBatch: batch.BatchName,
			}).Warnf("Row excluded: %s", reason)
			continue
		}
		tasks = append(tasks, task)
	}

	if len(tasks) == 0 {
		return nil, skipped, ErrNoValidTasks
	}
	return tasks, skipped, nil
}

// mapRow builds one task from a row, or returns a nil task with the
// exclusion reason.
func mapRow(row ParsedRow, batch domain.TaskBatch, index int) (*domain.Task, string) {
	content := domain.TaskContent{BatchName: batch.BatchName}
	language := batch.TargetLanguage

	switch batch.TaskType {
	case domain.TaskTypeTranslation:
		content.SourceText = row["source_text"]
		content.SourceLanguage = fallback(row["source_language"], batch.SourceLanguage)
		content.TargetLanguage = fallback(row["target_language"], batch.TargetLanguage)
		content.Domain = fallback(row["domain"], "general")
		language = content.TargetLanguage

	case domain.TaskTypeTTS:
		content.TextToSpeak = row["text_to_speak"]

	case domain.TaskTypeTranscription:
		content.AudioURL = row["audio_url"]

	default:
		return nil, "unsupported task type"
	}

	if name, value := content.RequiredField(batch.TaskType); value == "" {
		return nil, "missing " + name
	}

	content.TaskTitle = fallback(row["task_title"],
		fmt.Sprintf("%s - Item %d", batch.BatchName, index))
	content.TaskDescription = fallback(row["task_description"],
		fmt.Sprintf("Task %d of batch %s", index, batch.BatchName))

	return &domain.Task{
		Type:      batch.TaskType,
		Language:  language,
		Priority:  priorityOrDefault(batch.Priority),
		Status:    domain.TaskStatusPending,
		Content:   content,
		CreatedBy: batch.CreatedBy,
	}, ""
}

func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}

func priorityOrDefault(p domain.TaskPriority) domain.TaskPriority {
	if p == "" {
		return domain.PriorityMedium
	}
	return p
}
