package service

import (
	"context"
	"fmt"

	"task-planner/internal/model"
	"task-planner/internal/repository"
)

// CategoryInput represents data required to create or replace a category.
type CategoryInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"required,len=7"`
}

// CategoryPatch carries a partial update; nil fields are left untouched.
type CategoryPatch struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// CategoryService wraps category business logic on top of the repository.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *CategoryService) Get(ctx context.Context, userID, id uint) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, userID uint, input CategoryInput) (*model.Category, error) {
	if err := s.check(ctx, userID, input, 0); err != nil {
		return nil, err
	}

	category := &model.Category{
		UserID: userID,
		Name:   input.Name,
		Color:  input.Color,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update replaces the category's fields with the full input.
func (s *CategoryService) Update(ctx context.Context, userID, id uint, input CategoryInput) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if err := s.check(ctx, userID, input, id); err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Color = input.Color
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Patch applies only the fields present in the patch, then revalidates the
// resulting category as a whole.
func (s *CategoryService) Patch(ctx context.Context, userID, id uint, patch CategoryPatch) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	input := CategoryInput{Name: category.Name, Color: category.Color}
	if patch.Name != nil {
		input.Name = *patch.Name
	}
	if patch.Color != nil {
		input.Color = *patch.Color
	}
	return s.Update(ctx, userID, id, input)
}

// Delete removes the category; tasks referencing it keep existing with the
// reference cleared.
func (s *CategoryService) Delete(ctx context.Context, userID, id uint) error {
	return mapNotFound(s.repo.Delete(ctx, userID, id))
}

func (s *CategoryService) check(ctx context.Context, userID uint, input CategoryInput, excludeID uint) error {
	verr := newValidationError()
	if err := validate.Struct(input); err != nil {
		collectFieldErrors(err, verr)
	}
	if len(verr.Fields) > 0 {
		return verr
	}

	count, err := s.repo.CountByName(ctx, userID, input.Name, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("category %q: %w", input.Name, ErrConflict)
	}
	return nil
}
