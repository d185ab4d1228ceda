package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chetan-code/missioncontrol/internal/models"
	"github.com/google/uuid"
)

var userCounter atomic.Int64

type UserOption func(*models.User)

func WithRole(r models.Role) UserOption {
	return func(u *models.User) {
		u.Role = r
	}
}

func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

func WithUsername(name string) UserOption {
	return func(u *models.User) {
		u.Username = name
	}
}

// NewTestUser returns a user with unique email and username. The hash is
// not a real password hash.
func NewTestUser(opts ...UserOption) *models.User {
	n := userCounter.Add(1)
	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.New().String(),
		Email:        fmt.Sprintf("user%d@example.com", n),
		Username:     fmt.Sprintf("user%d", n),
		PasswordHash: "not-a-hash",
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type TaskOption func(*models.Task)

func WithStatus(s models.TaskStatus) TaskOption {
	return func(t *models.Task) {
		t.Status = s
	}
}

func WithCreatedAt(at time.Time) TaskOption {
	return func(t *models.Task) {
		t.CreatedAt = at
		t.UpdatedAt = at
	}
}

func WithAssignee(id string) TaskOption {
	return func(t *models.Task) {
		t.AssigneeID = &id
	}
}

func WithTaxonomy(ref models.TaxonomyRef) TaskOption {
	return func(t *models.Task) {
		t.Taxonomy = &ref
	}
}

func NewTestTask(title string, opts ...TaskOption) *models.Task {
	now := time.Now().UTC()
	t := &models.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: title + " description",
		Status:      models.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
		Notes:       []models.Note{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestNote(author, text string) *models.Note {
	return &models.Note{
		ID:        uuid.New().String(),
		Text:      text,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestCategory(name string) *models.Category {
	return &models.Category{ID: uuid.New().String(), Name: name, CreatedAt: time.Now().UTC()}
}

func NewTestType(categoryID, name string) *models.Type {
	return &models.Type{ID: uuid.New().String(), Name: name, CategoryID: categoryID, CreatedAt: time.Now().UTC()}
}

func NewTestItem(typeID, name string) *models.Item {
	return &models.Item{ID: uuid.New().String(), Name: name, TypeID: typeID, CreatedAt: time.Now().UTC()}
}
