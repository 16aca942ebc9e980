package repository

import (
	"context"

	"github.com/mawuli/afrivoice/internal/domain"
	"gorm.io/gorm"
)

// ImportJobRepository handles import job records.
type ImportJobRepository struct {
	db *gorm.DB
}

// NewImportJobRepository creates a new ImportJobRepository.
func NewImportJobRepository(db *gorm.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

// Create inserts a new import job record.
func (r *ImportJobRepository) Create(ctx context.Context, job *domain.ImportJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// Update saves the job's current fields.
func (r *ImportJobRepository) Update(ctx context.Context, job *domain.ImportJob) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// GetByID retrieves an import job by its ID.
func (r *ImportJobRepository) GetByID(ctx context.Context, id string) (*domain.ImportJob, error) {
	var job domain.ImportJob
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// ListRecent retrieves the most recent import jobs, optionally scoped to a
// creating user.
func (r *ImportJobRepository) ListRecent(ctx context.Context, createdBy string, limit int) ([]domain.ImportJob, error) {
	query := r.db.WithContext(ctx).Model(&domain.ImportJob{})
	if createdBy != "" {
		query = query.Where("created_by = ?", createdBy)
	}
	var jobs []domain.ImportJob
	err := query.Order("created_at DESC").Limit(limit).Find(&jobs).Error
	return jobs, err
}
