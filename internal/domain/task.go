package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// TaskType identifies the kind of contributor work a task asks for.
type TaskType string

const (
	TaskTypeASR           TaskType = "asr"
	TaskTypeTTS           TaskType = "tts"
	TaskTypeTranslation   TaskType = "translation"
	TaskTypeTranscription TaskType = "transcription"
)

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeASR, TaskTypeTTS, TaskTypeTranslation, TaskTypeTranscription:
		return true
	}
	return false
}

// TaskPriority is the batch-level priority stamped onto every created task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskStatus tracks a task through the contributor/validator workflow.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusAssigned  TaskStatus = "assigned"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusValidated TaskStatus = "validated"
	TaskStatusRejected  TaskStatus = "rejected"
)

// TaskContent is the type-dependent content document of a task, stored as JSON
// in a text column.
type TaskContent struct {
	SourceText      string `json:"source_text,omitempty"`
	SourceLanguage  string `json:"source_language,omitempty"`
	TargetLanguage  string `json:"target_language,omitempty"`
	Domain          string `json:"domain,omitempty"`
	TextToSpeak     string `json:"text_to_speak,omitempty"`
	AudioURL        string `json:"audio_url,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	TaskTitle       string `json:"task_title,omitempty"`
	TaskDescription string `json:"task_description,omitempty"`
	BatchName       string `json:"batch_name,omitempty"`
}

// Value implements the driver.Valuer interface for database serialization.
func (c TaskContent) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (c *TaskContent) Scan(value interface{}) error {
	if value == nil {
		*c = TaskContent{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan TaskContent")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, c)
}

// RequiredField returns the content field that must be non-empty for a task
// of the given type to be insertable, keyed by its column/JSON name.
func (c TaskContent) RequiredField(t TaskType) (name, value string) {
	switch t {
	case TaskTypeTranslation:
		return "source_text", c.SourceText
	case TaskTypeTTS:
		return "text_to_speak", c.TextToSpeak
	case TaskTypeTranscription:
		return "audio_url", c.AudioURL
	case TaskTypeASR:
		return "image_url", c.ImageURL
	}
	return "", ""
}

// Task is one unit of contributor work (one recording, one translation,
// one transcription).
type Task struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Type      TaskType     `gorm:"type:text;not null;index:idx_tasks_type" json:"type"`
	Language  string       `gorm:"type:text;not null;index:idx_tasks_language" json:"language"`
	Priority  TaskPriority `gorm:"type:text;default:medium" json:"priority"`
	Status    TaskStatus   `gorm:"type:text;index:idx_tasks_status;default:pending" json:"status"`
	Content   TaskContent  `gorm:"type:text" json:"content"`
	CreatedBy string       `gorm:"type:text;not null;index:idx_tasks_created_by" json:"created_by"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TableName returns the database table name for Task.
func (Task) TableName() string {
	return "tasks"
}
