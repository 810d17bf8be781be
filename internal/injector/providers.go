package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/scenesim/internal/core/events/bus"
	"github.com/zeusync/scenesim/internal/core/observability/log"
	"github.com/zeusync/scenesim/internal/core/scene"
)

// Runtime is everything a simulation driver needs.
type Runtime struct {
	Logger  log.Log
	Bus     bus.EventBus
	Manager *scene.Manager
}

func ProvideLogger(level log.Level) log.Log {
	return log.New(level)
}

func ProvideEventBus() bus.EventBus {
	return bus.New()
}

func ProvideManager(logger log.Log) *scene.Manager {
	return scene.NewManager(logger.Named("scenes"))
}

var RuntimeSet = wire.NewSet(
	ProvideLogger,
	ProvideEventBus,
	ProvideManager,
	wire.Struct(new(Runtime), "*"),
)
