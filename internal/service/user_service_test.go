package service

import (
	"context"
	"testing"
)

func TestLoginOutcomes(t *testing.T) {
	users, _, _ := newServices(t)
	ctx := context.Background()

	mustRegister(t, users, "ana@ua.es", "12345678", false)

	status, err := users.Login(ctx, "ana@ua.es", "12345678")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if status != LoginOK {
		t.Fatalf("expected LoginOK, got %v", status)
	}

	user, err := users.FindByEmail(ctx, "ana@ua.es")
	if err != nil || user == nil {
		t.Fatalf("expected registered user to be findable, got %v, %v", user, err)
	}

	if status, _ := users.Login(ctx, "ana@ua.es", "wrong"); status != LoginErrorPassword {
		t.Errorf("expected LoginErrorPassword, got %v", status)
	}
	if status, _ := users.Login(ctx, "nadie@ua.es", "12345678"); status != LoginUserNotFound {
		t.Errorf("expected LoginUserNotFound, got %v", status)
	}
}

func TestLoginBlockedBeforePassword(t *testing.T) {
	users, _, _ := newServices(t)
	ctx := context.Background()

	user := mustRegister(t, users, "ana@ua.es", "12345678", false)
	if err := users.SetBlocked(ctx, user.ID, true); err != nil {
		t.Fatalf("block user: %v", err)
	}

	// Blocked wins over both right and wrong passwords.
	if status, _ := users.Login(ctx, "ana@ua.es", "12345678"); status != LoginUserBlocked {
		t.Errorf("expected LoginUserBlocked with correct password, got %v", status)
	}
	if status, _ := users.Login(ctx, "ana@ua.es", "wrong"); status != LoginUserBlocked {
		t.Errorf("expected LoginUserBlocked with wrong password, got %v", status)
	}

	if err := users.SetBlocked(ctx, user.ID, false); err != nil {
		t.Fatalf("unblock user: %v", err)
	}
	if status, _ := users.Login(ctx, "ana@ua.es", "12345678"); status != LoginOK {
		t.Errorf("expected LoginOK after unblock, got %v", status)
	}
}

func TestRegisterValidation(t *testing.T) {
	users, _, _ := newServices(t)
	ctx := context.Background()

	if _, err := users.Register(ctx, RegisterInput{Password: "x"}); !IsValidation(err) {
		t.Errorf("expected validation failure without email, got %v", err)
	}
	if _, err := users.Register(ctx, RegisterInput{Email: "ana@ua.es"}); !IsValidation(err) {
		t.Errorf("expected validation failure without password, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users, _, _ := newServices(t)
	ctx := context.Background()

	mustRegister(t, users, "ana@ua.es", "12345678", false)
	_, err := users.Register(ctx, RegisterInput{Email: "ana@ua.es", Password: "otra"})
	if !IsConflict(err) {
		t.Errorf("expected conflict for duplicate email, got %v", err)
	}
}

func TestRegisterSingleAdministrator(t *testing.T) {
	users, _, _ := newServices(t)
	ctx := context.Background()

	exists, err := users.AdminExists(ctx)
	if err != nil || exists {
		t.Fatalf("expected no administrator yet, got %v, %v", exists, err)
	}

	mustRegister(t, users, "admin@ua.es", "12345678", true)

	exists, err = users.AdminExists(ctx)
	if err != nil || !exists {
		t.Fatalf("expected an administrator, got %v, %v", exists, err)
	}

	_, err = users.Register(ctx, RegisterInput{Email: "otro@ua.es", Password: "x", Admin: true})
	if !IsConflict(err) {
		t.Errorf("expected conflict for second administrator, got %v", err)
	}

	// Registering without the flag still works.
	mustRegister(t, users, "normal@ua.es", "12345678", false)
}

func TestSetBlockedUnknownUser(t *testing.T) {
	users, _, _ := newServices(t)
	if err := users.SetBlocked(context.Background(), 999, true); !IsNotFound(err) {
		t.Errorf("expected not-found for unknown user, got %v", err)
	}
}

func TestFindByIDMissIsNil(t *testing.T) {
	users, _, _ := newServices(t)
	user, err := users.FindByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user on miss, got %+v", user)
	}
}

func TestDeleteUserRemovesDependents(t *testing.T) {
	users, teams, tasks := newServices(t)
	ctx := context.Background()

	user := mustRegister(t, users, "ana@ua.es", "12345678", false)
	team, err := teams.Create(ctx, "Proyecto P1", "")
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if err := teams.AddMember(ctx, team.ID, user.ID); err != nil {
		t.Fatalf("add member: %v", err)
	}
	if _, err := tasks.CreateForUser(ctx, user.ID, "Tarea 1"); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if got, _ := users.FindByID(ctx, user.ID); got != nil {
		t.Errorf("user should be gone")
	}
	members, err := teams.Members(ctx, team.ID)
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("membership rows should be gone, got %d", len(members))
	}
	if err := users.Delete(ctx, user.ID); !IsNotFound(err) {
		t.Errorf("second delete should be not-found, got %v", err)
	}
}
