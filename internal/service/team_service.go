package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"gorm.io/gorm"

	"todolist/internal/model"
	"todolist/internal/repository"
)

// TeamService implements team CRUD and the membership relation.
type TeamService struct {
	teams  *repository.TeamRepository
	users  *repository.UserRepository
	logger *slog.Logger
}

func NewTeamService(teams *repository.TeamRepository, users *repository.UserRepository, logger *slog.Logger) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TeamService{teams: teams, users: users, logger: logger}
}

// Create persists a new team. The name must not be blank.
func (s *TeamService) Create(ctx context.Context, name, description string) (*model.Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, validationf("el nombre del equipo no puede estar vacío")
	}
	team := &model.Team{Name: name, Description: description}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	s.logger.Info("team created", slog.Uint64("team_id", uint64(team.ID)), slog.String("name", team.Name))
	return team, nil
}

func (s *TeamService) Get(ctx context.Context, id uint) (*model.Team, error) {
	team, err := s.teams.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("equipo no encontrado con id %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find team: %w", err)
	}
	return team, nil
}

// ListAllSortedByName returns every team ordered case-insensitively by name.
// Ties keep their stored order.
func (s *TeamService) ListAllSortedByName(ctx context.Context) ([]model.Team, error) {
	teams, err := s.teams.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return strings.ToLower(teams[i].Name) < strings.ToLower(teams[j].Name)
	})
	return teams, nil
}

// AddMember joins the user to the team. Joining twice is a conflict, not a
// no-op.
func (s *TeamService) AddMember(ctx context.Context, teamID, userID uint) error {
	team, user, err := s.teamAndUser(ctx, teamID, userID)
	if err != nil {
		return err
	}
	err = s.teams.AddMember(ctx, team, user)
	if errors.Is(err, repository.ErrMemberExists) {
		return conflictf("el usuario ya pertenece al equipo")
	}
	return err
}

// RemoveMember detaches the user from the team; leaving a team the user is
// not in is a conflict.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID uint) error {
	team, user, err := s.teamAndUser(ctx, teamID, userID)
	if err != nil {
		return err
	}
	err = s.teams.RemoveMember(ctx, team, user)
	if errors.Is(err, repository.ErrMemberMissing) {
		return conflictf("el usuario no pertenece al equipo")
	}
	return err
}

// IsMember reports membership. Unlike a plain lookup this query itself fails
// on unknown team or user ids.
func (s *TeamService) IsMember(ctx context.Context, teamID, userID uint) (bool, error) {
	if _, _, err := s.teamAndUser(ctx, teamID, userID); err != nil {
		return false, err
	}
	return s.teams.IsMember(ctx, teamID, userID)
}

func (s *TeamService) Members(ctx context.Context, teamID uint) ([]model.User, error) {
	team, err := s.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return s.teams.Members(ctx, team)
}

func (s *TeamService) TeamsOfUser(ctx context.Context, userID uint) ([]model.Team, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.teams.TeamsOfUser(ctx, user)
}

func (s *TeamService) Rename(ctx context.Context, teamID uint, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return validationf("el nombre del equipo no puede estar vacío")
	}
	team, err := s.Get(ctx, teamID)
	if err != nil {
		return err
	}
	team.Name = newName
	return s.teams.Save(ctx, team)
}

func (s *TeamService) SetDescription(ctx context.Context, teamID uint, description string) error {
	team, err := s.Get(ctx, teamID)
	if err != nil {
		return err
	}
	team.Description = description
	return s.teams.Save(ctx, team)
}

// Delete removes the team and its membership links, never the member users.
func (s *TeamService) Delete(ctx context.Context, teamID uint) error {
	team, err := s.Get(ctx, teamID)
	if err != nil {
		return err
	}
	if err := s.teams.Delete(ctx, team); err != nil {
		return err
	}
	s.logger.Info("team deleted", slog.Uint64("team_id", uint64(teamID)))
	return nil
}

func (s *TeamService) user(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("usuario no encontrado con id %d", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *TeamService) teamAndUser(ctx context.Context, teamID, userID uint) (*model.Team, *model.User, error) {
	team, err := s.Get(ctx, teamID)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return team, user, nil
}
