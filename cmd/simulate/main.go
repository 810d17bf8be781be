// Command simulate runs scenes headless for a fixed number of frames and logs
// where everything ended up.
//
// Scenes come from a YAML file (-file) or, without one, from the built-in
// test and platform templates. With -scene only the named scene runs, through
// the scene manager; otherwise every scene runs in its own goroutine.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/scenesim/internal/core/observability/log"
	"github.com/zeusync/scenesim/internal/core/scene"
	"github.com/zeusync/scenesim/internal/injector"
)

type options struct {
	file     string
	sceneArg string
	frames   int
	dt       float64
	level    string
}

func main() {
	var opts options
	flag.StringVar(&opts.file, "file", "", "YAML scene descriptions; built-in scenes are used when empty")
	flag.StringVar(&opts.sceneArg, "scene", "", "run only the named scene")
	flag.IntVar(&opts.frames, "frames", 600, "number of frames to simulate")
	flag.Float64Var(&opts.dt, "dt", 1.0/60.0, "frame time in seconds")
	flag.StringVar(&opts.level, "log", "info", "log level: debug, info, warn or error")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt := injector.InitializeRuntime(log.ParseLevel(opts.level))
	if err := run(ctx, rt, opts); err != nil {
		rt.Logger.Error("simulation failed", log.Error(err))
		_ = rt.Logger.Sync()
		os.Exit(1)
	}
	_ = rt.Logger.Sync()
}

func run(ctx context.Context, rt *injector.Runtime, opts options) error {
	if opts.frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", opts.frames)
	}
	if !(opts.dt > 0) {
		return fmt.Errorf("dt must be positive, got %g", opts.dt)
	}

	scenes, err := loadScenes(rt, opts.file)
	if err != nil {
		return err
	}
	for _, s := range scenes {
		if _, err = scene.DispatchCollisions(rt.Bus, s); err != nil {
			return err
		}
		rt.Manager.AddScene(s)
	}

	if opts.sceneArg != "" {
		return runActive(ctx, rt, opts)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range scenes {
		s := s
		g.Go(func() error {
			return simulate(ctx, s, opts, s.Update)
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}
	for _, s := range scenes {
		report(rt.Logger, s)
	}
	metrics := rt.Bus.Metrics()
	rt.Logger.Info("events",
		log.Uint64("published", metrics.Published),
		log.Uint64("delivered", metrics.DeliveredHandlers),
		log.Uint64("errors", metrics.Errors),
	)
	return nil
}

func runActive(ctx context.Context, rt *injector.Runtime, opts options) error {
	if !rt.Manager.SetActiveScene(opts.sceneArg) {
		return fmt.Errorf("%w: %q (have %v)", scene.ErrSceneNotFound, opts.sceneArg, rt.Manager.SceneNames())
	}
	s := rt.Manager.ActiveScene()
	if err := simulate(ctx, s, opts, rt.Manager.Update); err != nil {
		return err
	}
	report(rt.Logger, s)
	return nil
}

func loadScenes(rt *injector.Runtime, path string) ([]*scene.Scene, error) {
	sceneOpts := []scene.Option{scene.WithLogger(rt.Logger), scene.WithEventBus(rt.Bus)}
	if path == "" {
		return []*scene.Scene{
			scene.NewTestScene(sceneOpts...),
			scene.NewPlatformScene(sceneOpts...),
		}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	descs, err := scene.LoadDescriptionYAML(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if len(descs) == 0 {
		return nil, fmt.Errorf("load %s: %w", path, scene.ErrEmptyScene)
	}
	scenes := make([]*scene.Scene, 0, len(descs))
	for _, d := range descs {
		s, _, err := d.Build(rt.Logger, scene.WithEventBus(rt.Bus))
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, s)
	}
	return scenes, nil
}

// simulate drives enemies and advances s once per frame through update.
func simulate(ctx context.Context, s *scene.Scene, opts options, update func(float64)) error {
	now := 0.0
	for i := 0; i < opts.frames; i++ {
		if err := ctx.Err(); err != nil {
			return errors.Join(fmt.Errorf("scene %q stopped at frame %d", s.Name(), i), err)
		}
		scene.DriveEnemies(s, now)
		update(opts.dt)
		now += opts.dt
	}
	return nil
}

func report(logger log.Log, s *scene.Scene) {
	stats := s.World().Stats()
	fields := []log.Field{
		log.String("scene", s.Name()),
		log.Int("objects", s.ObjectCount()),
		log.Uint64("sub_steps", stats.TotalSubSteps),
		log.String("fingerprint", strconv.FormatUint(s.World().Fingerprint(), 16)),
	}
	if _, obj, ok := s.FindObjectByName("Player"); ok {
		p := obj.Position()
		fields = append(fields,
			log.Any("player_position", []float64{p.X(), p.Y(), p.Z()}),
		)
		if player, ok := obj.(*scene.Player); ok {
			fields = append(fields,
				log.Int("player_health", player.Health()),
				log.Bool("player_grounded", player.Grounded()),
			)
		}
	}
	logger.Info("scene finished", fields...)
}
