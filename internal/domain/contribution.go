package domain

import "time"

// ContributionStatus tracks validator review of a submitted contribution.
type ContributionStatus string

const (
	ContributionPending  ContributionStatus = "pending"
	ContributionAccepted ContributionStatus = "accepted"
	ContributionRejected ContributionStatus = "rejected"
)

// Contribution is a contributor's submitted response to a task: a recording
// uploaded to object storage, or a text payload for translation/transcription
// tasks.
type Contribution struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	TaskID      uint               `gorm:"not null;index:idx_contributions_task" json:"task_id"`
	UserID      string             `gorm:"type:text;not null;index:idx_contributions_user" json:"user_id"`
	Type        TaskType           `gorm:"type:text;not null" json:"type"`
	StoragePath string             `gorm:"type:text" json:"storage_path,omitempty"`
	Text        string             `gorm:"type:text" json:"text,omitempty"`
	Status      ContributionStatus `gorm:"type:text;default:pending;index" json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TableName returns the database table name for Contribution.
func (Contribution) TableName() string {
	return "contributions"
}
