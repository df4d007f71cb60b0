package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"todolist/internal/model"
	"todolist/internal/repository"
)

// TaskService implements per-user task CRUD and pagination.
type TaskService struct {
	tasks  *repository.TaskRepository
	users  *repository.UserRepository
	logger *slog.Logger
}

func NewTaskService(tasks *repository.TaskRepository, users *repository.UserRepository, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{tasks: tasks, users: users, logger: logger}
}

// CreateForUser adds a task owned by the given user.
func (s *TaskService) CreateForUser(ctx context.Context, userID uint, title string) (*model.Task, error) {
	if err := s.checkUser(ctx, userID, "al crear tarea"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, validationf("la tarea no tiene título")
	}
	task := &model.Task{UserID: userID, Title: title}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	s.logger.Debug("task created", slog.Uint64("task_id", uint64(task.ID)), slog.Uint64("user_id", uint64(userID)))
	return task, nil
}

// ListAllForUser returns every task of the user, ascending by id.
func (s *TaskService) ListAllForUser(ctx context.Context, userID uint) ([]model.Task, error) {
	if err := s.checkUser(ctx, userID, "al listar tareas"); err != nil {
		return nil, err
	}
	return s.tasks.ByUser(ctx, userID)
}

// ListPageForUser returns the page-th slice of size tasks in ascending-id
// order. Pages past the end are empty, not an error.
func (s *TaskService) ListPageForUser(ctx context.Context, userID uint, page, size int) ([]model.Task, error) {
	if page < 0 || size < 1 {
		return nil, validationf("página o tamaño de página inválidos")
	}
	if err := s.checkUser(ctx, userID, "al listar tareas paginadas"); err != nil {
		return nil, err
	}
	return s.tasks.PageByUser(ctx, userID, page*size, size)
}

func (s *TaskService) CountForUser(ctx context.Context, userID uint) (int, error) {
	if err := s.checkUser(ctx, userID, "al contar tareas"); err != nil {
		return 0, err
	}
	count, err := s.tasks.CountByUser(ctx, userID)
	return int(count), err
}

// FindByID returns nil without error when the task does not exist; a miss is
// a normal outcome here, callers decide what it means.
func (s *TaskService) FindByID(ctx context.Context, taskID uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// Update changes the task title; the owner is immutable.
func (s *TaskService) Update(ctx context.Context, taskID uint, newTitle string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("no existe tarea con id %d", taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	task.Title = newTitle
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, taskID uint) error {
	task, err := s.tasks.FindByID(ctx, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("no existe tarea con id %d", taskID)
	}
	if err != nil {
		return fmt.Errorf("find task: %w", err)
	}
	return s.tasks.Delete(ctx, task)
}

// UserOwnsTask fails on unknown user or task ids rather than answering false.
func (s *TaskService) UserOwnsTask(ctx context.Context, userID, taskID uint) (bool, error) {
	if err := s.checkUser(ctx, userID, "al comprobar propiedad"); err != nil {
		return false, err
	}
	task, err := s.tasks.FindByID(ctx, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, notFoundf("no existe tarea con id %d", taskID)
	}
	if err != nil {
		return false, fmt.Errorf("find task: %w", err)
	}
	return task.UserID == userID, nil
}

func (s *TaskService) checkUser(ctx context.Context, userID uint, action string) error {
	_, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("usuario %d no existe %s", userID, action)
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	return nil
}
