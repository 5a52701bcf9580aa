package api

import "task-planner/internal/model"

// CategoryResponse is the category wire shape; identical on read and write,
// the owner never appears in it.
type CategoryResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TaskResponse is the task wire shape. The category reference is expanded to
// the full category object on read, and the owner is rendered as a read-only
// display name.
type TaskResponse struct {
	ID         uint              `json:"id"`
	Title      string            `json:"title"`
	Notes      string            `json:"notes"`
	Date       string            `json:"date"`
	StartTime  string            `json:"start_time"`
	EndTime    string            `json:"end_time"`
	Completed  bool              `json:"completed"`
	Priority   string            `json:"priority"`
	Recurrence string            `json:"recurrence"`
	Reminders  string            `json:"reminders"`
	Category   *CategoryResponse `json:"category"`
	Owner      string            `json:"owner"`
}

func newCategoryResponse(category *model.Category) CategoryResponse {
	return CategoryResponse{
		ID:    category.ID,
		Name:  category.Name,
		Color: category.Color,
	}
}

func newTaskResponse(task *model.Task, owner *model.User) TaskResponse {
	resp := TaskResponse{
		ID:         task.ID,
		Title:      task.Title,
		Notes:      task.Notes,
		Date:       task.Date,
		StartTime:  task.StartTime,
		EndTime:    task.EndTime,
		Completed:  task.Completed,
		Priority:   string(task.Priority),
		Recurrence: task.Recurrence,
		Reminders:  task.Reminders,
		Owner:      owner.Username,
	}
	if task.Category != nil {
		category := newCategoryResponse(task.Category)
		resp.Category = &category
	}
	return resp
}
