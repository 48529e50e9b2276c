package repository

import (
	"testing"

	"github.com/mini-ozon/internal/constants"
)

func TestUserUpdateStatusBumpsTokenVersionOnDisable(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewUserRepository(db)
	user := mustCreateUser(t, db, "alice")

	if err := repo.UpdateStatus(user.ID, constants.UserStatusDisabled); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	got, err := repo.GetByID(user.ID)
	if err != nil || got == nil {
		t.Fatalf("get user failed: %v", err)
	}
	if got.Status != constants.UserStatusDisabled || got.TokenVersion != 1 {
		t.Fatalf("unexpected user after disable: %+v", got)
	}

	if err := repo.UpdateStatus(user.ID, constants.UserStatusActive); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	got, _ = repo.GetByID(user.ID)
	if got.Status != constants.UserStatusActive || got.TokenVersion != 1 {
		t.Fatalf("enable should keep token version: %+v", got)
	}
}

func TestUserListFiltersAndBatchLookup(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewUserRepository(db)
	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")
	mustCreateUser(t, db, "alina")

	users, total, err := repo.List(UserListFilter{Search: "ali", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(users) != 2 || users[0].ID != alice.ID {
		t.Fatalf("unexpected search result: total=%d users=%+v", total, users)
	}

	found, err := repo.ListByIDs([]uint{bob.ID, 999})
	if err != nil {
		t.Fatalf("list by ids failed: %v", err)
	}
	if len(found) != 1 || found[0].Username != "bob" {
		t.Fatalf("unexpected batch result: %+v", found)
	}
	empty, err := repo.ListByIDs(nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty ids should return empty slice, got %v err=%v", empty, err)
	}
}

func TestUserGetByUsernameMissingReturnsNil(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewUserRepository(db)
	user, err := repo.GetByUsername("ghost")
	if err != nil || user != nil {
		t.Fatalf("expected nil user, got %+v err=%v", user, err)
	}
}
