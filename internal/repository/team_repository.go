package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todolist/internal/model"
)

// TeamRepository handles persistence for teams and the membership relation.
type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *model.Team) error {
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uint) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	if err := r.db.WithContext(ctx).Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *TeamRepository) Save(ctx context.Context, team *model.Team) error {
	if err := r.db.WithContext(ctx).Save(team).Error; err != nil {
		return fmt.Errorf("save team: %w", err)
	}
	return nil
}

// Delete removes the team and its membership rows; member users survive.
func (r *TeamRepository) Delete(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(team).Association("Members").Clear(); err != nil {
			return fmt.Errorf("clear team members: %w", err)
		}
		if err := tx.Delete(team).Error; err != nil {
			return fmt.Errorf("delete team: %w", err)
		}
		return nil
	})
}

// AddMember appends the user to the team unless already present. The
// membership check and the insert run in one transaction so two concurrent
// joins cannot both pass the check.
func (r *TeamRepository) AddMember(ctx context.Context, team *model.Team, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table("team_users").
			Where("team_id = ? AND user_id = ?", team.ID, user.ID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check membership: %w", err)
		}
		if count > 0 {
			return ErrMemberExists
		}
		if err := tx.Model(team).Association("Members").Append(user); err != nil {
			return fmt.Errorf("add member: %w", err)
		}
		return nil
	})
}

// RemoveMember detaches the user from the team, failing when there is no
// membership row to remove.
func (r *TeamRepository) RemoveMember(ctx context.Context, team *model.Team, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table("team_users").
			Where("team_id = ? AND user_id = ?", team.ID, user.ID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check membership: %w", err)
		}
		if count == 0 {
			return ErrMemberMissing
		}
		if err := tx.Model(team).Association("Members").Delete(user); err != nil {
			return fmt.Errorf("remove member: %w", err)
		}
		return nil
	})
}

func (r *TeamRepository) IsMember(ctx context.Context, teamID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("team_users").
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TeamRepository) Members(ctx context.Context, team *model.Team) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN team_users ON team_users.user_id = users.id").
		Where("team_users.team_id = ?", team.ID).
		Order("users.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *TeamRepository) TeamsOfUser(ctx context.Context, user *model.User) ([]model.Team, error) {
	var teams []model.Team
	if err := r.db.WithContext(ctx).
		Joins("JOIN team_users ON team_users.team_id = teams.id").
		Where("team_users.user_id = ?", user.ID).
		Order("teams.id ASC").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}
