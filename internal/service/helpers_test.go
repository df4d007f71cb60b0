package service

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"todolist/internal/model"
	"todolist/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func newServices(t *testing.T) (*UserService, *TeamService, *TaskService) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	return NewUserService(userRepo, nil),
		NewTeamService(teamRepo, userRepo, nil),
		NewTaskService(taskRepo, userRepo, nil)
}

func mustRegister(t *testing.T, users *UserService, email, password string, admin bool) *model.User {
	t.Helper()
	user, err := users.Register(context.Background(), RegisterInput{
		Email:    email,
		Name:     "Usuario " + email,
		Password: password,
		Admin:    admin,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}
