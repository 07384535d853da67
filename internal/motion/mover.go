// Package motion drives an end effector along a planned coverage path.
package motion

import (
	"github.com/Faultbox/coverbot/internal/logger"
	"github.com/Faultbox/coverbot/pkg/coverage"
	"github.com/Faultbox/coverbot/pkg/math"
	"go.uber.org/zap"
)

// State is the mover's current activity.
type State int

const (
	StateIdle State = iota
	StateApproaching
	StateFollowing
	StateReturning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateApproaching:
		return "approaching"
	case StateFollowing:
		return "following"
	case StateReturning:
		return "returning"
	default:
		return "unknown"
	}
}

// Config tunes a Mover.
type Config struct {
	Speed            float64 // units per second
	ArrivalThreshold float64
	ReturnHome       bool
}

// DefaultConfig returns the default mover settings.
func DefaultConfig() Config {
	return Config{
		Speed:            5,
		ArrivalThreshold: 0.1,
		ReturnHome:       true,
	}
}

// Mover walks an end effector through an OrderedPath. It owns its cursor;
// the path itself is never modified.
type Mover struct {
	cfg Config

	path   coverage.OrderedPath
	cursor int

	position math.Vec3
	home     math.Vec3
	state    State
}

// NewMover creates an idle mover parked at home.
func NewMover(cfg Config, home math.Vec3) *Mover {
	return &Mover{cfg: cfg, position: home, home: home}
}

// SetPath stops the mover and replaces its path.
func (m *Mover) SetPath(path coverage.OrderedPath) {
	m.Stop()
	m.path = path
	m.cursor = 0
}

// Path returns the path being followed.
func (m *Mover) Path() coverage.OrderedPath { return m.path }

// Start begins moving toward the first unvisited waypoint. It returns false
// if there is nothing left to visit.
func (m *Mover) Start() bool {
	if m.cursor >= m.path.Len() {
		return false
	}
	if m.cursor == 0 {
		m.state = StateApproaching
	} else {
		m.state = StateFollowing
	}
	logger.Debug("mover started",
		zap.Int("waypoints", m.path.Len()),
		zap.Int("cursor", m.cursor))
	return true
}

// Stop halts movement in place. The cursor is kept so Start resumes.
func (m *Mover) Stop() {
	m.state = StateIdle
}

// Reset stops and rewinds the cursor to the first waypoint.
func (m *Mover) Reset() {
	m.Stop()
	m.cursor = 0
}

// Update advances the effector by dt seconds and returns its new position.
func (m *Mover) Update(dt float64) math.Vec3 {
	if m.state == StateIdle || dt <= 0 {
		return m.position
	}

	step := m.cfg.Speed * dt
	switch m.state {
	case StateApproaching, StateFollowing:
		target := m.path.At(m.cursor)
		m.position = m.position.MoveTowards(target, step)
		if m.position.Distance(target) <= m.cfg.ArrivalThreshold {
			m.cursor++
			m.state = StateFollowing
			if m.cursor >= m.path.Len() {
				m.finishPath()
			}
		}
	case StateReturning:
		m.position = m.position.MoveTowards(m.home, step)
		if m.position.Distance(m.home) <= m.cfg.ArrivalThreshold {
			m.state = StateIdle
			logger.Debug("mover returned home")
		}
	}
	return m.position
}

func (m *Mover) finishPath() {
	logger.Debug("path complete", zap.Int("waypoints", m.path.Len()))
	if m.cfg.ReturnHome {
		m.state = StateReturning
		return
	}
	m.state = StateIdle
}

// State returns the current state.
func (m *Mover) State() State { return m.state }

// Cursor returns the index of the next waypoint to visit. Waypoints before
// it have been passed.
func (m *Mover) Cursor() int { return m.cursor }

// Done reports whether every waypoint has been visited.
func (m *Mover) Done() bool { return m.path.Len() > 0 && m.cursor >= m.path.Len() }

// Passed returns the visited waypoints.
func (m *Mover) Passed() []math.Vec3 {
	return m.path.Points()[:m.cursor]
}

// Remaining returns the waypoints not yet visited.
func (m *Mover) Remaining() []math.Vec3 {
	return m.path.Points()[m.cursor:]
}

// Position returns the current effector position.
func (m *Mover) Position() math.Vec3 { return m.position }

// SetPosition teleports the effector.
func (m *Mover) SetPosition(p math.Vec3) { m.position = p }

// Home returns the home position.
func (m *Mover) Home() math.Vec3 { return m.home }

// SetHome changes where the mover returns after finishing a path.
func (m *Mover) SetHome(p math.Vec3) { m.home = p }
