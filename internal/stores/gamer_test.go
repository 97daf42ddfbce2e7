package stores

import (
	"errors"
	"testing"
)

func TestGamerGetByUserID(t *testing.T) {
	db := newTestDB(t)
	store := NewGamerStore(db)

	gamer := seedGamer(t, db, "Molly", "Ringwald")

	profile, err := store.GetByUserID(gamer.UserID)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}

	if profile.ID != gamer.ID {
		t.Errorf("got gamer %d, want %d", profile.ID, gamer.ID)
	}
	if profile.FullName != "Molly Ringwald" {
		t.Errorf("got full name %q, want Molly Ringwald", profile.FullName)
	}
}

func TestGamerGetByUserIDMissingProfile(t *testing.T) {
	db := newTestDB(t)
	store := NewGamerStore(db)

	// A user id with no gamer row resolves to the profile error, not
	// the generic not-found.
	if _, err := store.GetByUserID(42); !errors.Is(err, ErrNoGamerProfile) {
		t.Fatalf("got %v, want ErrNoGamerProfile", err)
	}
}

func TestGamerCreateDuplicateProfile(t *testing.T) {
	db := newTestDB(t)
	store := NewGamerStore(db)

	gamer := seedGamer(t, db, "Molly", "Ringwald")

	var conflictErr *ConflictError

	if _, err := store.Create(gamer.UserID, "second profile"); !errors.As(err, &conflictErr) {
		t.Fatalf("got %v, want ConflictError", err)
	}
}

func TestGamerUpdateBio(t *testing.T) {
	db := newTestDB(t)
	store := NewGamerStore(db)

	gamer := seedGamer(t, db, "Molly", "Ringwald")

	if err := store.UpdateBio(gamer.ID, "board game enjoyer"); err != nil {
		t.Fatalf("UpdateBio failed: %v", err)
	}

	profile, err := store.Get(gamer.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if profile.Bio != "board game enjoyer" {
		t.Errorf("got bio %q, want updated bio", profile.Bio)
	}

	if err := store.UpdateBio(999, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
