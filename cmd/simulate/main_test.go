package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/scenesim/internal/core/observability/log"
	"github.com/zeusync/scenesim/internal/core/scene"
	"github.com/zeusync/scenesim/internal/injector"
)

func testOptions() options {
	return options{frames: 120, dt: 1.0 / 60.0}
}

func TestRunBuiltinScenes(t *testing.T) {
	rt := injector.InitializeRuntime(log.LevelError)
	require.NoError(t, run(context.Background(), rt, testOptions()))
	assert.Equal(t, []string{scene.PlatformSceneName, scene.TestSceneName}, rt.Manager.SceneNames())

	s, _ := rt.Manager.Scene(scene.TestSceneName)
	assert.Equal(t, uint64(120), s.World().Stats().TotalSubSteps)
}

func TestRunFile(t *testing.T) {
	rt := injector.InitializeRuntime(log.LevelError)
	opts := testOptions()
	opts.file = "testdata/arena.yaml"
	require.NoError(t, run(context.Background(), rt, opts))

	arena, ok := rt.Manager.Scene("Arena")
	require.True(t, ok)
	_, _, ok = arena.FindObjectByName("Collectible")
	assert.False(t, ok, "the player starts on the gem and collects it")
	_, ok = rt.Manager.Scene("Drop Test")
	assert.True(t, ok)
}

func TestRunSingleScene(t *testing.T) {
	rt := injector.InitializeRuntime(log.LevelError)
	opts := testOptions()
	opts.sceneArg = scene.PlatformSceneName
	require.NoError(t, run(context.Background(), rt, opts))

	active := rt.Manager.ActiveScene()
	require.NotNil(t, active)
	assert.Equal(t, uint64(120), active.World().Stats().TotalSubSteps)
	idle, _ := rt.Manager.Scene(scene.TestSceneName)
	assert.Zero(t, idle.World().Stats().TotalSubSteps)
}

func TestRunErrors(t *testing.T) {
	rt := injector.InitializeRuntime(log.LevelError)

	opts := testOptions()
	opts.sceneArg = "Nowhere"
	assert.ErrorIs(t, run(context.Background(), rt, opts), scene.ErrSceneNotFound)

	opts = testOptions()
	opts.dt = 0
	assert.Error(t, run(context.Background(), rt, opts))

	opts = testOptions()
	opts.file = "testdata/missing.yaml"
	assert.Error(t, run(context.Background(), rt, opts))
}

func TestRunRejectsDuplicateSceneNames(t *testing.T) {
	rt := injector.InitializeRuntime(log.LevelError)
	opts := testOptions()
	opts.file = "testdata/twins.yaml"
	assert.ErrorIs(t, run(context.Background(), rt, opts), scene.ErrInvalidDescription)
	assert.Empty(t, rt.Manager.SceneNames())
}

func TestRunStopsOnCancel(t *testing.T) {
	rt := injector.InitializeRuntime(log.LevelError)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, run(ctx, rt, testOptions()), context.Canceled)
}
