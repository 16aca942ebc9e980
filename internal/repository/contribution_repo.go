package repository

import (
	"context"

	"github.com/mawuli/afrivoice/internal/domain"
	"gorm.io/gorm"
)

// ContributionRepository handles contribution data operations.
type ContributionRepository struct {
	db *gorm.DB
}

// NewContributionRepository creates a new ContributionRepository.
func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

// Create inserts a new contribution record.
func (r *ContributionRepository) Create(ctx context.Context, c *domain.Contribution) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// ListByTask retrieves all contributions submitted against a task.
func (r *ContributionRepository) ListByTask(ctx context.Context, taskID uint) ([]domain.Contribution, error) {
	var contributions []domain.Contribution
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&contributions).Error
	return contributions, err
}

// CountByStatus aggregates contribution counts per review status.
func (r *ContributionRepository) CountByStatus(ctx context.Context) (map[domain.ContributionStatus]int64, error) {
	type row struct {
		Status domain.ContributionStatus
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&domain.Contribution{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[domain.ContributionStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
