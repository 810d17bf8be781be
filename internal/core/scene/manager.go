package scene

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zeusync/scenesim/internal/core/observability/log"
)

type TransitionKind uint8

const (
	TransitionFade TransitionKind = iota
	TransitionSlide
	TransitionInstant
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionFade:
		return "fade"
	case TransitionSlide:
		return "slide"
	case TransitionInstant:
		return "instant"
	default:
		return "unknown"
	}
}

func ParseTransitionKind(s string) (TransitionKind, error) {
	switch strings.ToLower(s) {
	case "fade", "":
		return TransitionFade, nil
	case "slide":
		return TransitionSlide, nil
	case "instant":
		return TransitionInstant, nil
	}
	return 0, fmt.Errorf("unknown transition kind %q", s)
}

// transitionRate makes every transition last half a second. The kind only
// tells a renderer how to draw it.
const transitionRate = 2.0

// Transition is an in-progress switch between scenes. From is empty when no
// scene was active at the start.
type Transition struct {
	From     string
	To       string
	Kind     TransitionKind
	Progress float64
}

// Manager holds named scenes and drives the active one. It is not safe for
// concurrent use.
type Manager struct {
	scenes     map[string]*Scene
	active     string
	hasActive  bool
	transition *Transition
	logger     log.Log
}

// NewManager creates a manager with no scenes.
func NewManager(logger log.Log) *Manager {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Manager{
		scenes: make(map[string]*Scene),
		logger: logger,
	}
}

// AddScene registers s under its name, replacing any scene of the same name.
func (m *Manager) AddScene(s *Scene) {
	if s == nil {
		return
	}
	if prev, ok := m.scenes[s.Name()]; ok && prev != s {
		m.logger.Warn("scene replaced", log.String("scene", s.Name()))
	}
	m.scenes[s.Name()] = s
	m.logger.Debug("scene added", log.String("scene", s.Name()))
}

// RemoveScene reports whether the scene existed. Removing the active scene
// leaves the manager with no active scene, and a transition into it is
// abandoned.
func (m *Manager) RemoveScene(name string) bool {
	if _, ok := m.scenes[name]; !ok {
		return false
	}
	delete(m.scenes, name)
	if m.hasActive && m.active == name {
		m.active, m.hasActive = "", false
	}
	if m.transition != nil && m.transition.To == name {
		m.transition = nil
	}
	m.logger.Debug("scene removed", log.String("scene", name))
	return true
}

// SetActiveScene deactivates the current scene and activates name. It fails
// without side effects when name is unknown.
func (m *Manager) SetActiveScene(name string) bool {
	next, ok := m.scenes[name]
	if !ok {
		return false
	}
	if current := m.ActiveScene(); current != nil {
		current.SetActive(false)
	}
	next.SetActive(true)
	m.active, m.hasActive = name, true
	m.logger.Info("scene activated", log.String("scene", name))
	return true
}

// ActiveScene returns nil when no scene is active.
func (m *Manager) ActiveScene() *Scene {
	if !m.hasActive {
		return nil
	}
	return m.scenes[m.active]
}

func (m *Manager) ActiveSceneName() (string, bool) {
	return m.active, m.hasActive
}

func (m *Manager) Scene(name string) (*Scene, bool) {
	s, ok := m.scenes[name]
	return s, ok
}

// SceneNames returns the registered names in sorted order.
func (m *Manager) SceneNames() []string {
	names := make([]string, 0, len(m.scenes))
	for name := range m.scenes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Update advances the active scene only.
func (m *Manager) Update(dt float64) {
	if s := m.ActiveScene(); s != nil {
		s.Update(dt)
	}
}

// TransitionToScene starts a transition to name, replacing any transition
// already running. It reports false when name is unknown.
func (m *Manager) TransitionToScene(name string, kind TransitionKind) bool {
	if _, ok := m.scenes[name]; !ok {
		return false
	}
	m.transition = &Transition{From: m.active, To: name, Kind: kind}
	m.logger.Info("scene transition started",
		log.String("from", m.active),
		log.String("to", name),
		log.String("kind", kind.String()),
	)
	return true
}

// UpdateTransition advances the running transition. When it completes the
// record is cleared and the target scene becomes active.
func (m *Manager) UpdateTransition(dt float64) {
	if m.transition == nil {
		return
	}
	m.transition.Progress += dt * transitionRate
	if m.transition.Progress < 1 {
		return
	}
	to := m.transition.To
	m.transition = nil
	m.SetActiveScene(to)
}

func (m *Manager) IsTransitioning() bool { return m.transition != nil }

// Transition returns a copy of the running transition.
func (m *Manager) Transition() (Transition, bool) {
	if m.transition == nil {
		return Transition{}, false
	}
	return *m.transition, true
}
