package domain

import "time"

// ImportJobStatus represents the status of a bulk import run.
type ImportJobStatus string

const (
	ImportJobPending   ImportJobStatus = "pending"
	ImportJobRunning   ImportJobStatus = "running"
	ImportJobCompleted ImportJobStatus = "completed"
	ImportJobFailed    ImportJobStatus = "failed"
)

// ImportJob records one bulk task import run and its outcome counters.
type ImportJob struct {
	ID            string          `gorm:"type:text;primaryKey" json:"id"`
	FileName      string          `gorm:"type:text" json:"file_name"`
	TaskType      TaskType        `gorm:"type:text;not null;index" json:"task_type"`
	BatchName     string          `gorm:"type:text" json:"batch_name"`
	Status        ImportJobStatus `gorm:"type:text;default:pending;index" json:"status"`
	TotalRows     int             `gorm:"default:0" json:"total_rows"`
	InsertedTasks int             `gorm:"default:0" json:"inserted_tasks"`
	SkippedRows   int             `gorm:"default:0" json:"skipped_rows"`
	FailedEntries int             `gorm:"default:0" json:"failed_entries"`
	ErrorLog      string          `gorm:"type:text" json:"error_log,omitempty"`
	CreatedBy     string          `gorm:"type:text;index" json:"created_by"`
	StartedAt     *time.Time      `json:"started_at,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName returns the database table name for ImportJob.
func (ImportJob) TableName() string {
	return "import_jobs"
}
