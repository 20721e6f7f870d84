package db

import (
	"context"

	"github.com/taskdeck/backend/internal/core/ports"
	"github.com/taskdeck/backend/internal/domain"
	"github.com/taskdeck/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type taskRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepository(db *gorm.DB, log *logger.Logger) ports.TaskRepository {
	return &taskRepository{db: db, log: log}
}

func filtered(tx *gorm.DB, filter domain.Filter) *gorm.DB {
	switch filter {
	case domain.FilterPending:
		return tx.Where("completed = ?", false)
	case domain.FilterCompleted:
		return tx.Where("completed = ?", true)
	default:
		return tx
	}
}

func (r *taskRepository) List(ctx context.Context, filter domain.Filter) ([]domain.Task, error) {
	var tasks []domain.Task
	tx := filtered(r.db.WithContext(ctx), filter)
	if err := tx.Order("created_at DESC").Find(&tasks).Error; err != nil {
		r.log.Errorw("task_repo_list_failed", "filter", filter, "error", err)
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		r.log.Errorw("task_repo_create_failed", "id", task.ID, "error", err)
		return err
	}
	r.log.Infow("task_repo_create_ok", "id", task.ID)
	return nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	// Save with Select forces completed_at to be written even when it goes
	// back to NULL.
	res := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ?", task.ID).
		Select("text", "completed", "completed_at", "updated_at").
		Updates(task)
	if res.Error != nil {
		r.log.Errorw("task_repo_update_failed", "id", task.ID, "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if res.Error != nil {
		r.log.Errorw("task_repo_delete_failed", "id", id, "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.log.Infow("task_repo_delete_ok", "id", id)
	return nil
}

func (r *taskRepository) DeleteByFilter(ctx context.Context, filter domain.Filter) (int64, error) {
	tx := filtered(r.db.WithContext(ctx), filter)
	res := tx.Where("1 = 1").Delete(&domain.Task{})
	if res.Error != nil {
		r.log.Errorw("task_repo_bulk_delete_failed", "filter", filter, "error", res.Error)
		return 0, res.Error
	}
	r.log.Infow("task_repo_bulk_delete_ok", "filter", filter, "count", res.RowsAffected)
	return res.RowsAffected, nil
}

func (r *taskRepository) Counts(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	row := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) AS completed").
		Row()
	if err := row.Scan(&stats.Total, &stats.Completed); err != nil {
		r.log.Errorw("task_repo_counts_failed", "error", err)
		return domain.Stats{}, err
	}
	stats.Pending = stats.Total - stats.Completed
	return stats, nil
}

func (r *taskRepository) Import(ctx context.Context, tasks []domain.Task, replace bool) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replace {
			if err := tx.Where("1 = 1").Delete(&domain.Task{}).Error; err != nil {
				return err
			}
		}
		for i := range tasks {
			if err := tx.Create(&tasks[i]).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		r.log.Errorw("task_repo_import_failed", "replace", replace, "error", err)
		return 0, err
	}
	r.log.Infow("task_repo_import_ok", "count", inserted, "replace", replace)
	return inserted, nil
}
