package repository

import (
	"context"
	"time"

	"github.com/chetan-code/missioncontrol/internal/models"
)

// UserRepo is the credential store.
type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type TaxonomyRepo interface {
	CreateCategory(ctx context.Context, c *models.Category) error
	CreateType(ctx context.Context, t *models.Type) error
	CreateItem(ctx context.Context, i *models.Item) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListTypes(ctx context.Context, categoryID string) ([]models.Type, error)
	ListItems(ctx context.Context, typeID string) ([]models.Item, error)
	DeleteCategory(ctx context.Context, id string) error
	DeleteType(ctx context.Context, id string) error
	DeleteItem(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context, statuses []models.TaskStatus, limit, offset int) ([]models.Task, error)
	Count(ctx context.Context, statuses []models.TaskStatus) (int, error)
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id string) error
	Touch(ctx context.Context, id string, at time.Time) error
	AddNote(ctx context.Context, taskID string, n *models.Note) error
	DeleteNote(ctx context.Context, taskID, noteID string) error
}
