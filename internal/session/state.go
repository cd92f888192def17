package session

import (
	"time"

	"github.com/jonathan/cv-builder/internal/types"
)

// State groups the zoom and navigation state of one editing session.
type State struct {
	Zoom *Zoom
	Nav  *Navigator
}

// New creates session state over the given section titles.
func New(sections []string, confirmDelay time.Duration) *State {
	return &State{
		Zoom: NewZoom(),
		Nav:  NewNavigator(sections, confirmDelay),
	}
}

// View snapshots the state for the API.
func (s *State) View() types.SessionView {
	return types.SessionView{
		Zoom:          s.Zoom.Level(),
		ActiveSection: s.Nav.Active(),
		Sections:      s.Nav.Sections(),
		Confirming:    s.Nav.Confirming(),
		Progress:      s.Nav.Progress(),
	}
}

// Close stops pending timers.
func (s *State) Close() {
	s.Nav.Stop()
}
