// types.go
package screen

import (
	"errors"

	"github.com/google/uuid"

	"github.com/screenlux/screenlux-backend/internal/catalog"
)

// Config is one shopper-configured screen unit to be purchased.
// Option fields hold option-catalog ids; empty means not selected yet.
type Config struct {
	ID           string `json:"id"`
	WidthMM      int    `json:"width_mm"`
	HeightMM     int    `json:"height_mm"`
	FrameColor   string `json:"frame_color,omitempty"`
	FabricColor  string `json:"fabric_color,omitempty"`
	FabricType   string `json:"fabric_type,omitempty"`
	CassetteSize string `json:"cassette_size,omitempty"`
	Motor        string `json:"motor,omitempty"`
	// Valid reflects the last dimension validation; set via Revalidate only.
	Valid bool `json:"valid"`
}

// InstallMethod selects how the shopper wants the screens mounted.
type InstallMethod string

const (
	InstallSelf         InstallMethod = "self"
	InstallProfessional InstallMethod = "professional"
)

// MotorSolar is the motor option id for the solar-powered drive; every other
// selection (including none) counts as a wired drive for installation.
const MotorSolar = "solar"

// Session is the aggregate the engine consumes to build a cart payload.
type Session struct {
	ID          string         `json:"id"`
	Screens     []Config       `json:"screens"`
	Install     InstallMethod  `json:"install"`
	Accessories map[string]int `json:"accessories,omitempty"` // addon id -> qty, always > 0
	BracketID   string         `json:"bracket_id,omitempty"`  // self-install only
}

var ErrLastScreen = errors.New("a session keeps at least one screen")

// NewConfig returns a fresh, unselected screen with its own identity.
func NewConfig() Config {
	return Config{ID: uuid.NewString()}
}

// NewSession seeds a session with one default screen.
func NewSession() *Session {
	return &Session{
		ID:          uuid.NewString(),
		Screens:     []Config{NewConfig()},
		Install:     InstallSelf,
		Accessories: make(map[string]int),
	}
}

// AddScreen appends a fresh screen and returns its index.
func (s *Session) AddScreen() int {
	s.Screens = append(s.Screens, NewConfig())
	return len(s.Screens) - 1
}

// RemoveScreen deletes the screen at i, refusing to drop the last one.
func (s *Session) RemoveScreen(i int) error {
	if i < 0 || i >= len(s.Screens) {
		return errors.New("screen index out of range")
	}
	if len(s.Screens) == 1 {
		return ErrLastScreen
	}
	s.Screens = append(s.Screens[:i], s.Screens[i+1:]...)
	return nil
}

// DuplicateScreen copies the screen at i under a new identity and returns the
// new screen's index.
func (s *Session) DuplicateScreen(i int) (int, error) {
	if i < 0 || i >= len(s.Screens) {
		return 0, errors.New("screen index out of range")
	}
	dup := s.Screens[i]
	dup.ID = uuid.NewString()
	s.Screens = append(s.Screens, dup)
	return len(s.Screens) - 1, nil
}

// SetAccessory stores a requested quantity; zero or negative removes the entry.
func (s *Session) SetAccessory(id string, qty int) {
	if s.Accessories == nil {
		s.Accessories = make(map[string]int)
	}
	if qty <= 0 {
		delete(s.Accessories, id)
		return
	}
	s.Accessories[id] = qty
}

// Revalidate re-runs dimension validation on every screen.
func (s *Session) Revalidate(b catalog.Bounds) {
	for i := range s.Screens {
		s.Screens[i].Revalidate(b)
	}
}
