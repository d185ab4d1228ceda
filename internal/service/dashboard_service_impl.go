package service

import (
	"context"
	"fmt"

	"github.com/chetan-code/missioncontrol/internal/auth"
	"github.com/chetan-code/missioncontrol/internal/models"
	"github.com/chetan-code/missioncontrol/internal/repository"
)

type dashboardService struct {
	users repository.UserRepo
	tasks repository.TaskRepo
}

func NewDashboardService(users repository.UserRepo, tasks repository.TaskRepo) DashboardService {
	return &dashboardService{users: users, tasks: tasks}
}

func (s *dashboardService) Summary(ctx context.Context, sess auth.Session) (*Dashboard, error) {
	me, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalTasks, err := s.tasks.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	open, err := s.tasks.Count(ctx, []models.TaskStatus{models.StatusTodo, models.StatusInProgress})
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Message:    fmt.Sprintf("Welcome, %s!", me.Username),
		UserID:     me.ID,
		TotalUsers: totalUsers,
		TotalTasks: totalTasks,
		OpenTasks:  open,
	}, nil
}
