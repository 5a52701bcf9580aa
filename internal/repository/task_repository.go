package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-planner/internal/model"
)

// TaskRepository handles CRUD for tasks, always scoped to the owning user.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create persists the task. The Category association is never written here;
// the service attaches it for response rendering only.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Preload("Category").
		Where("user_id = ?", userID).
		Order("date ASC, start_time ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("Category").
		Where("user_id = ? AND id = ?", userID, taskID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	// Save with a full struct would skip zero values for completed and
	// priority, so update by column map instead.
	updates := map[string]interface{}{
		"category_id": task.CategoryID,
		"title":       task.Title,
		"notes":       task.Notes,
		"date":        task.Date,
		"start_time":  task.StartTime,
		"end_time":    task.EndTime,
		"completed":   task.Completed,
		"priority":    string(task.Priority),
		"recurrence":  task.Recurrence,
		"reminders":   task.Reminders,
	}
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND id = ?", task.UserID, task.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
