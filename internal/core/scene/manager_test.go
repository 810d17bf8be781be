package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/scenesim/internal/core/systems/physics"
)

func newManagerWithScenes(t *testing.T) (*Manager, *Scene, *Scene) {
	t.Helper()
	m := NewManager(nil)
	menu := New("Menu")
	level := New("Level")
	m.AddScene(menu)
	m.AddScene(level)
	m.AddScene(nil)
	return m, menu, level
}

func TestManagerActiveScene(t *testing.T) {
	m, menu, level := newManagerWithScenes(t)
	assert.Equal(t, []string{"Level", "Menu"}, m.SceneNames())
	assert.Nil(t, m.ActiveScene())

	require.True(t, m.SetActiveScene("Menu"))
	assert.Same(t, menu, m.ActiveScene())

	require.True(t, m.SetActiveScene("Level"))
	assert.False(t, menu.Active(), "previous scene is deactivated")
	assert.True(t, level.Active())
	name, ok := m.ActiveSceneName()
	assert.True(t, ok)
	assert.Equal(t, "Level", name)

	assert.False(t, m.SetActiveScene("Credits"))
	assert.Same(t, level, m.ActiveScene(), "unknown names change nothing")

	s, ok := m.Scene("Menu")
	require.True(t, ok)
	assert.Same(t, menu, s)
}

func TestManagerUpdatesOnlyActiveScene(t *testing.T) {
	m, menu, level := newManagerWithScenes(t)
	mh := menu.AddPlayer(physics.Vec3(0, 10, 0))
	lh := level.AddPlayer(physics.Vec3(0, 10, 0))
	require.True(t, m.SetActiveScene("Level"))
	menu.SetActive(true)

	for i := 0; i < 30; i++ {
		m.Update(frame)
	}

	mb, _ := menu.RigidBody(mh)
	lb, _ := level.RigidBody(lh)
	assert.Equal(t, 10.0, mb.Position.Y())
	assert.Less(t, lb.Position.Y(), 10.0)
}

func TestManagerRemoveScene(t *testing.T) {
	m, _, _ := newManagerWithScenes(t)
	require.True(t, m.SetActiveScene("Menu"))
	require.True(t, m.TransitionToScene("Level", TransitionSlide))

	assert.True(t, m.RemoveScene("Menu"))
	assert.Nil(t, m.ActiveScene())
	_, ok := m.ActiveSceneName()
	assert.False(t, ok)
	assert.True(t, m.IsTransitioning(), "transition away from a removed scene continues")

	assert.True(t, m.RemoveScene("Level"))
	assert.False(t, m.IsTransitioning(), "transition into a removed scene is abandoned")
	assert.False(t, m.RemoveScene("Level"))
	assert.Empty(t, m.SceneNames())
	assert.NotPanics(t, func() { m.Update(frame) })
}

func TestManagerTransition(t *testing.T) {
	m, _, level := newManagerWithScenes(t)
	require.True(t, m.SetActiveScene("Menu"))

	assert.False(t, m.TransitionToScene("Credits", TransitionFade))
	assert.False(t, m.IsTransitioning())

	require.True(t, m.TransitionToScene("Level", TransitionFade))
	tr, ok := m.Transition()
	require.True(t, ok)
	assert.Equal(t, Transition{From: "Menu", To: "Level", Kind: TransitionFade}, tr)

	m.UpdateTransition(0.25)
	tr, _ = m.Transition()
	assert.Equal(t, 0.5, tr.Progress)
	name, _ := m.ActiveSceneName()
	assert.Equal(t, "Menu", name, "switch happens only on completion")

	m.UpdateTransition(0.25)
	assert.False(t, m.IsTransitioning())
	assert.Same(t, level, m.ActiveScene())

	m.UpdateTransition(1)
	assert.Same(t, level, m.ActiveScene())
}

func TestManagerTransitionCompletesInHalfASecond(t *testing.T) {
	for _, kind := range []TransitionKind{TransitionFade, TransitionSlide, TransitionInstant} {
		t.Run(kind.String(), func(t *testing.T) {
			m, _, _ := newManagerWithScenes(t)
			require.True(t, m.TransitionToScene("Level", kind))

			frames := 0
			for m.IsTransitioning() {
				m.UpdateTransition(frame)
				frames++
				require.Less(t, frames, 100)
			}
			assert.InDelta(t, 30, frames, 1)
			name, ok := m.ActiveSceneName()
			assert.True(t, ok)
			assert.Equal(t, "Level", name)
		})
	}
}
