package screen

import (
	"errors"
	"testing"
)

func TestNewSessionSeedsOneScreen(t *testing.T) {
	s := NewSession()
	if s.ID == "" {
		t.Fatal("session needs an id")
	}
	if len(s.Screens) != 1 {
		t.Fatalf("expected 1 seeded screen, got %d", len(s.Screens))
	}
	if s.Screens[0].Valid {
		t.Fatal("a blank screen cannot be valid")
	}
}

func TestRemoveScreenFloor(t *testing.T) {
	s := NewSession()
	if err := s.RemoveScreen(0); !errors.Is(err, ErrLastScreen) {
		t.Fatalf("expected ErrLastScreen, got %v", err)
	}
	s.AddScreen()
	if err := s.RemoveScreen(0); err != nil {
		t.Fatalf("removing with two screens must work: %v", err)
	}
	if len(s.Screens) != 1 {
		t.Fatalf("expected 1 screen left, got %d", len(s.Screens))
	}
}

func TestRemoveScreenOutOfRange(t *testing.T) {
	s := NewSession()
	if err := s.RemoveScreen(5); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
}

func TestDuplicateScreenNewIdentity(t *testing.T) {
	s := NewSession()
	s.Screens[0].WidthMM = 1500
	s.Screens[0].FabricType = "blackout"

	idx, err := s.DuplicateScreen(0)
	if err != nil {
		t.Fatal(err)
	}
	dup := s.Screens[idx]
	if dup.ID == s.Screens[0].ID {
		t.Fatal("duplicate must get its own id")
	}
	if dup.WidthMM != 1500 || dup.FabricType != "blackout" {
		t.Fatalf("duplicate must copy fields, got %+v", dup)
	}
	// mutating the copy must not touch the original
	s.Screens[idx].WidthMM = 900
	if s.Screens[0].WidthMM != 1500 {
		t.Fatal("duplicate shares state with original")
	}
}

func TestSetAccessoryZeroRemoves(t *testing.T) {
	s := NewSession()
	s.SetAccessory("remote", 2)
	if s.Accessories["remote"] != 2 {
		t.Fatalf("expected qty 2, got %d", s.Accessories["remote"])
	}
	s.SetAccessory("remote", 0)
	if _, ok := s.Accessories["remote"]; ok {
		t.Fatal("zero quantity must remove the entry")
	}
	s.SetAccessory("switch", -1)
	if _, ok := s.Accessories["switch"]; ok {
		t.Fatal("negative quantity must not be stored")
	}
}

func TestSessionRevalidate(t *testing.T) {
	s := NewSession()
	s.Screens[0].WidthMM = 1500
	s.Screens[0].HeightMM = 1000
	s.AddScreen()

	s.Revalidate(testBounds)
	if !s.Screens[0].Valid {
		t.Fatal("in-bounds screen must be valid")
	}
	if s.Screens[1].Valid {
		t.Fatal("blank screen must stay invalid")
	}
}
