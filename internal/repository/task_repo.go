package repository

import (
	"context"

	"github.com/mawuli/afrivoice/internal/domain"
	"gorm.io/gorm"
)

// TaskRepository handles task data operations.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a single task record.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// InsertBatch inserts the given tasks in one multi-row INSERT. Callers are
// expected to keep the slice within a single request's practical size limit;
// the importer's chunked writer takes care of that.
func (r *TaskRepository) InsertBatch(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(tasks).Error
}

// GetByID retrieves a task by its ID.
func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// TaskFilter narrows List results. Zero values are ignored.
type TaskFilter struct {
	Type     domain.TaskType
	Language string
	Status   domain.TaskStatus
	Batch    string
}

// List retrieves tasks matching the filter with pagination, newest first.
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter, limit, offset int) ([]domain.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Task{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Language != "" {
		query = query.Where("language = ?", filter.Language)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Batch != "" {
		query = query.Where("content LIKE ?", "%\"batch_name\":\""+filter.Batch+"\"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []domain.Task
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// StatusCount is one row of a per-status aggregation.
type StatusCount struct {
	Status domain.TaskStatus `json:"status"`
	Count  int64             `json:"count"`
}

// TypeCount is one row of a per-type aggregation.
type TypeCount struct {
	Type  domain.TaskType `json:"type"`
	Count int64           `json:"count"`
}

// CountByStatus aggregates task counts per status for dashboard counters.
func (r *TaskRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error
	return counts, err
}

// CountByType aggregates task counts per task type for dashboard counters.
func (r *TaskRepository) CountByType(ctx context.Context) ([]TypeCount, error) {
	var counts []TypeCount
	err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Select("type, count(*) as count").
		Group("type").
		Scan(&counts).Error
	return counts, err
}

// UpdateStatus moves a task to the given status.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id uint, status domain.TaskStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("id = ?", id).
		Update("status", status).Error
}
