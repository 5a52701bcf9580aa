package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"task-planner/internal/model"
	"task-planner/internal/repository"
)

// TaskInput represents data required to create or replace a task. Owner is
// never part of the payload; it always comes from the authenticated caller.
type TaskInput struct {
	Title      string `json:"title" validate:"required,max=200"`
	Notes      string `json:"notes"`
	Date       string `json:"date" validate:"required"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
	Completed  bool   `json:"completed"`
	Priority   string `json:"priority"`
	Recurrence string `json:"recurrence" validate:"max=50"`
	Reminders  string `json:"reminders" validate:"max=100"`
	Category   *uint  `json:"category"`
}

// TaskPatch carries a partial update; nil fields are left untouched.
// Category is raw JSON so an explicit null (clear the reference) can be told
// apart from an absent key (keep it).
type TaskPatch struct {
	Title      *string         `json:"title"`
	Notes      *string         `json:"notes"`
	Date       *string         `json:"date"`
	StartTime  *string         `json:"start_time"`
	EndTime    *string         `json:"end_time"`
	Completed  *bool           `json:"completed"`
	Priority   *string         `json:"priority"`
	Recurrence *string         `json:"recurrence"`
	Reminders  *string         `json:"reminders"`
	Category   json.RawMessage `json:"category"`
}

// TaskService wraps task business logic.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

func (s *TaskService) List(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

func (s *TaskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	task, err := s.buildTask(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update replaces every mutable field of the task with the full input.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, input TaskInput) (*model.Task, error) {
	if _, err := s.taskRepo.FindByID(ctx, userID, taskID); err != nil {
		return nil, mapNotFound(err)
	}

	task, err := s.buildTask(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	task.ID = taskID
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Patch folds the provided fields into the stored task and runs the result
// through the same validation as a full update.
func (s *TaskService) Patch(ctx context.Context, userID, taskID uint, patch TaskPatch) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	input := TaskInput{
		Title:      task.Title,
		Notes:      task.Notes,
		Date:       task.Date,
		StartTime:  task.StartTime,
		EndTime:    task.EndTime,
		Completed:  task.Completed,
		Priority:   string(task.Priority),
		Recurrence: task.Recurrence,
		Reminders:  task.Reminders,
		Category:   task.CategoryID,
	}
	if patch.Title != nil {
		input.Title = *patch.Title
	}
	if patch.Notes != nil {
		input.Notes = *patch.Notes
	}
	if patch.Date != nil {
		input.Date = *patch.Date
	}
	if patch.StartTime != nil {
		input.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		input.EndTime = *patch.EndTime
	}
	if patch.Completed != nil {
		input.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		input.Priority = *patch.Priority
	}
	if patch.Recurrence != nil {
		input.Recurrence = *patch.Recurrence
	}
	if patch.Reminders != nil {
		input.Reminders = *patch.Reminders
	}
	if len(patch.Category) > 0 {
		if bytes.Equal(bytes.TrimSpace(patch.Category), []byte("null")) {
			input.Category = nil
		} else {
			var id uint
			if err := json.Unmarshal(patch.Category, &id); err != nil {
				verr := newValidationError()
				verr.Add("category", "must be a category id or null")
				return nil, verr
			}
			input.Category = &id
		}
	}

	return s.Update(ctx, userID, taskID, input)
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	return mapNotFound(s.taskRepo.Delete(ctx, userID, taskID))
}

// buildTask validates the input, collecting every field violation, and
// resolves the category reference against the caller's own categories. A
// category belonging to another user is reported exactly like a missing one.
func (s *TaskService) buildTask(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	verr := newValidationError()
	if err := validate.Struct(input); err != nil {
		collectFieldErrors(err, verr)
	}

	if !model.Priority(input.Priority).Valid() {
		verr.Add("priority", "must be one of: High, Medium, Low")
	}
	if input.Date != "" && !validDate(input.Date) {
		verr.Add("date", "must use the YYYY-MM-DD format")
	}
	start := input.StartTime
	if start != "" {
		if n, ok := normalizeClock(start); ok {
			start = n
		} else {
			verr.Add("start_time", "must use the HH:MM format")
		}
	}
	end := input.EndTime
	if end != "" {
		if n, ok := normalizeClock(end); ok {
			end = n
		} else {
			verr.Add("end_time", "must use the HH:MM format")
		}
	}

	var category *model.Category
	if input.Category != nil {
		found, err := s.categoryRepo.FindByID(ctx, userID, *input.Category)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			verr.Add("category", "does not exist")
		case err != nil:
			return nil, err
		default:
			category = found
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	task := &model.Task{
		UserID:     userID,
		Title:      input.Title,
		Notes:      input.Notes,
		Date:       input.Date,
		StartTime:  start,
		EndTime:    end,
		Completed:  input.Completed,
		Priority:   model.Priority(input.Priority),
		Recurrence: input.Recurrence,
		Reminders:  input.Reminders,
		Category:   category,
	}
	if category != nil {
		task.CategoryID = &category.ID
	}
	return task, nil
}
