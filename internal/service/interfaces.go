package service

import (
	"context"

	"github.com/chetan-code/missioncontrol/internal/auth"
	"github.com/chetan-code/missioncontrol/internal/models"
)

// AuthResult is returned by every successful sign-in.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

type IdentityService interface {
	Register(ctx context.Context, email, username, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	LoginWithProvider(ctx context.Context, email string) (*AuthResult, error)
	VerifyToken(token string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*models.UserPublic, error)
	Directory(ctx context.Context) ([]models.UserPublic, error)
}

type TaxonomyService interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	CreateType(ctx context.Context, name, categoryID string) (*models.Type, error)
	CreateItem(ctx context.Context, name, typeID string) (*models.Item, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListTypes(ctx context.Context, categoryID string) ([]models.Type, error)
	ListItems(ctx context.Context, typeID string) ([]models.Item, error)
	DeleteCategory(ctx context.Context, id string) error
	DeleteType(ctx context.Context, id string) error
	DeleteItem(ctx context.Context, id string) error
}

// TaskInput carries the writable fields of a task. On update every field
// is replaced, so nil optional fields clear the stored value.
type TaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	AssigneeID  *string
	Taxonomy    *models.TaxonomyRef
}

type TaskService interface {
	CreateTask(ctx context.Context, in TaskInput) (*models.Task, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, in TaskInput) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, f models.TaskFilter) (*models.TaskPage, error)
	AddNote(ctx context.Context, taskID, authorID, text string) (*models.Task, error)
	DeleteNote(ctx context.Context, taskID, noteID string) (*models.Task, error)
}

// ProfileUpdate changes only the fields that are set.
type ProfileUpdate struct {
	Email    *string
	Username *string
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]models.UserPublic, error)
	SetRole(ctx context.Context, callerID, id string, role models.Role) (*models.UserPublic, error)
	UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*models.UserPublic, error)
	DeleteUser(ctx context.Context, callerID, id string) error
	CreateAdmin(ctx context.Context, email, username, password string) (*models.UserPublic, error)
}

// Dashboard is the landing summary for a signed-in user.
type Dashboard struct {
	Message    string `json:"message"`
	UserID     string `json:"user_id"`
	TotalUsers int    `json:"total_users"`
	TotalTasks int    `json:"total_tasks"`
	OpenTasks  int    `json:"open_tasks"`
}

type DashboardService interface {
	Summary(ctx context.Context, s auth.Session) (*Dashboard, error)
}
