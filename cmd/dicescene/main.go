package main

import (
	"DiceScene/internal/animation"
	"DiceScene/internal/audio"
	"DiceScene/internal/behaviour"
	"DiceScene/internal/config"
	"DiceScene/internal/engine"
	"DiceScene/internal/events"
	"DiceScene/internal/logger"
	"DiceScene/internal/panel"
	"DiceScene/internal/scene"
	"context"
	"os"
	"runtime"

	"go.uber.org/zap"
)

func init() {
	// glfw and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	logger.Init()
	defer logger.Sync()

	if err := run(config.DefaultPath); err != nil {
		logger.Log.Error("DiceScene exited with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func tunables(cfg config.Config) animation.Tunables {
	return animation.Tunables{
		Spin: animation.SpinParams{
			MaxSpeed:  cfg.Spin.MaxSpeed,
			Decay:     cfg.Spin.Decay,
			Threshold: cfg.Spin.Threshold,
		},
		Sway: animation.SwayParams{
			Amplitude: cfg.Sway.Amplitude,
			Frequency: cfg.Sway.Frequency,
		},
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		logger.Log.Warn("Keeping default log level", zap.Error(err))
	}
	logger.Log.Info("DiceScene starting", zap.String("config", configPath), zap.Int64("seed", cfg.Scene.Seed))

	rng := animation.NewRand(cfg.Scene.Seed)
	objs, err := scene.NewBuilder(cfg.Scene, rng).Build()
	if err != nil {
		return err
	}

	clicks := events.NewQueue()
	initial := tunables(cfg)
	loop := animation.NewLoop(animation.LoopOptions{
		Arena:   objs.Arena,
		Cube:    objs.Cube,
		Spinner: animation.NewSpinner(initial.Spin),
		Blades:  animation.NewBlades(objs.Arena, objs.Blades, initial.Sway),
		Queue:   clicks,
		Rand:    rng,
	})
	behaviour.GlobalBehaviourManager.Add(loop)

	var player *audio.Player
	if cfg.Audio.Enabled {
		player = audio.NewPlayer(animation.NewRand(cfg.Scene.Seed), cfg.Audio.Volume)
		if err := player.Init(); err != nil {
			logger.Log.Warn("Audio disabled", zap.Error(err))
		}
		defer player.Close()
		loop.OnSpinStart(func(state animation.SpinState) {
			player.PlayRattle(float64(state.Strength(loop.Spinner().Params().MaxSpeed)))
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err = config.Watch(ctx, configPath, func(next config.Config) {
		loop.Retune(tunables(next))
		if err := logger.SetLevel(next.Log.Level); err != nil {
			logger.Log.Warn("Ignoring log level", zap.Error(err))
		}
		if player != nil {
			player.SetVolume(next.Audio.Volume)
		}
	})
	if err != nil {
		logger.Log.Warn("Live config reload disabled", zap.Error(err))
	}

	gopher := engine.NewGopher(engine.Options{
		Window: cfg.Window,
		Camera: cfg.Camera,
		Clicks: clicks,
	})
	gopher.SetFrustumCulling(cfg.Scene.FrustumCulling)
	gopher.OnInit(func(g *engine.Gopher) error {
		objs.AddTo(g.GetRenderer())
		g.Lights = objs.Lights.All()
		logger.Log.Info("Scene ready",
			zap.Int("models", objs.Arena.Len()),
			zap.Int("lights", len(g.Lights)))
		return nil
	})
	if cfg.Panel.Enabled {
		gopher.SetOnGUI(panel.Bind(objs).Draw)
	}
	gopher.SetOnRenderCallback(func(float64) {
		objs.SyncHelpers()
	})

	return gopher.Render()
}
