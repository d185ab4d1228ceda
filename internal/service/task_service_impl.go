package service

import (
	"context"
	"strings"
	"time"

	"github.com/chetan-code/missioncontrol/internal/db"
	"github.com/chetan-code/missioncontrol/internal/models"
	"github.com/chetan-code/missioncontrol/internal/repository"
	"github.com/google/uuid"
)

const (
	DefaultPageLimit = 25
	MaxPageLimit     = 100
)

type taskService struct {
	tasks repository.TaskRepo
	uow   db.UnitOfWork
}

func NewTaskService(tasks repository.TaskRepo, uow db.UnitOfWork) TaskService {
	return &taskService{tasks: tasks, uow: uow}
}

// CreateTask always starts a task in todo; in.Status is ignored.
func (s *taskService) CreateTask(ctx context.Context, in TaskInput) (*models.Task, error) {
	in.Status = models.StatusTodo
	t, err := buildTask(in)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t.ID = uuid.New().String()
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, t.ID)
}

func (s *taskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// UpdateTask replaces every writable field. Notes and created_at are kept.
func (s *taskService) UpdateTask(ctx context.Context, id string, in TaskInput) (*models.Task, error) {
	if !in.Status.Valid() {
		return nil, invalid("status must be one of todo, in_progress, done")
	}
	t, err := buildTask(in)
	if err != nil {
		return nil, err
	}
	t.ID = id
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewTaskRepo(tx).Delete(ctx, id)
	})
}

// ListTasks returns one page of the filter. Callers fill in defaults for
// page and limit; zero values are rejected like any other out-of-range value.
func (s *taskService) ListTasks(ctx context.Context, f models.TaskFilter) (*models.TaskPage, error) {
	page, limit := f.Page, f.Limit
	if page < 1 {
		return nil, invalid("page must be at least 1")
	}
	if limit < 1 || limit > MaxPageLimit {
		return nil, invalid("limit must be between 1 and %d", MaxPageLimit)
	}
	for _, st := range f.Statuses {
		if !st.Valid() {
			return nil, invalid("unknown status %q", st)
		}
	}

	var total int
	var tasks []models.Task
	err := s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewTaskRepo(tx)
		var err error
		if total, err = txTasks.Count(ctx, f.Statuses); err != nil {
			return err
		}
		// past the last page; also keeps (page-1)*limit from overflowing
		if total == 0 || page-1 > (total-1)/limit {
			return nil
		}
		tasks, err = txTasks.List(ctx, f.Statuses, limit, (page-1)*limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return &models.TaskPage{
		Tasks:      tasks,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// AddNote appends a note authored by authorID and returns the whole task.
// The text is stored exactly as given; whitespace-only text is rejected.
func (s *taskService) AddNote(ctx context.Context, taskID, authorID, text string) (*models.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, invalid("note is required")
	}
	now := time.Now().UTC()
	n := &models.Note{ID: uuid.New().String(), Text: text, Author: authorID, CreatedAt: now}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewTaskRepo(tx)
		if err := txTasks.Touch(ctx, taskID, now); err != nil {
			return err
		}
		return txTasks.AddNote(ctx, taskID, n)
	})
	if err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, taskID)
}

// DeleteNote removes one note. A missing task is reported before a
// missing note.
func (s *taskService) DeleteNote(ctx context.Context, taskID, noteID string) (*models.Task, error) {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewTaskRepo(tx)
		if err := txTasks.Touch(ctx, taskID, time.Now().UTC()); err != nil {
			return err
		}
		return txTasks.DeleteNote(ctx, taskID, noteID)
	})
	if err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, taskID)
}

func buildTask(in TaskInput) (*models.Task, error) {
	title, err := requireText("title", in.Title)
	if err != nil {
		return nil, err
	}
	description, err := requireText("description", in.Description)
	if err != nil {
		return nil, err
	}
	ref, err := validateTaxonomy(in.Taxonomy)
	if err != nil {
		return nil, err
	}
	return &models.Task{
		Title:       title,
		Description: description,
		Status:      in.Status,
		AssigneeID:  optionalID(in.AssigneeID),
		Taxonomy:    ref,
	}, nil
}
