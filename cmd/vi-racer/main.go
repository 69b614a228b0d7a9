package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-racer/audio"
	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/content"
	"github.com/lixenwraith/vi-racer/core"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/logging"
	"github.com/lixenwraith/vi-racer/modes"
	"github.com/lixenwraith/vi-racer/render"
	"github.com/lixenwraith/vi-racer/saved"
	"github.com/lixenwraith/vi-racer/status"
	"github.com/lixenwraith/vi-racer/telemetry"
	"github.com/lixenwraith/vi-racer/track"
)

var (
	configFlag = flag.String("config", config.DefaultPath, "Path to the JSON config file")
	debugFlag  = flag.Bool("debug", false, "Write a debug log under logs/")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Debug = true
	}

	sink, err := logging.Setup(logging.Options{
		Debug:    cfg.Debug,
		Level:    cfg.Log.Level,
		GelfAddr: cfg.Log.GelfAddr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer sink.Close()
	log := sink.Logger

	trk, err := loadTrack(cfg.Track.File)
	if err != nil {
		log.Error().Err(err).Str("file", cfg.Track.File).Msg("Track load failed")
		fmt.Fprintf(os.Stderr, "Failed to load track: %v\n", err)
		os.Exit(1)
	}

	store, err := saved.Open(cfg.Store.DSN, log)
	if err != nil {
		log.Error().Err(err).Msg("Saved store unavailable")
		fmt.Fprintf(os.Stderr, "Failed to open saved store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	feed := content.NewService(contentProvider(cfg, log), cfg.ContentTimeout(), log)
	defer feed.Stop()

	metrics := status.NewRegistry(nil)

	// Initialize terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()
	core.SetCrashReset(screen.Fini)
	defer core.SetCrashReset(nil)

	// Audio is optional; failures leave the game silent
	var sound modes.Audio
	audioCfg := audio.DefaultConfig()
	audioCfg.Enabled = cfg.Audio.Enabled
	soundManager := audio.NewSoundManager(audioCfg, log)
	if err := soundManager.Initialize(); err != nil {
		log.Warn().Err(err).Msg("Audio initialization failed, continuing without audio")
	} else {
		sound = soundManager
		defer soundManager.Cleanup()
	}

	renderer := render.NewTerminalRenderer(screen)
	renderer.Resize(screen.Size())

	router := modes.NewRouter(renderer, modes.Options{
		Lobby:       modes.NewLobby(feed, store, log),
		NewRace:     raceFactory(cfg, trk, metrics, log),
		Audio:       sound,
		Metrics:     metrics,
		HoldTimeout: cfg.HoldTimeout(),
		Logger:      log,
	})
	defer router.Close()

	log.Info().Str("config", cfg.File).Str("track", trk.Name).Msg("vi-racer started")

	eventChan := make(chan tcell.Event, 256)
	// Input polling runs on its own goroutine since PollEvent blocks
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// Nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	frameTicker := time.NewTicker(cfg.RenderInterval())
	defer frameTicker.Stop()

	router.Draw()
	for {
		select {
		case ev := <-eventChan:
			if !router.Handle(ev) {
				log.Info().Msg("vi-racer exiting")
				return
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
		case <-frameTicker.C:
			router.Draw()
		}
	}
}

func loadTrack(file string) (*track.Track, error) {
	if file == "" {
		return track.Default(), nil
	}
	return track.Load(file)
}

// contentProvider goes online only when an API key is configured
func contentProvider(cfg *config.Config, log zerolog.Logger) content.Provider {
	if cfg.Content.FootballAPIKey == "" && cfg.Content.NewsAPIKey == "" {
		return content.Static{}
	}
	return content.NewHTTP(content.HTTPConfig{
		FootballAPIKey: cfg.Content.FootballAPIKey,
		NewsAPIKey:     cfg.Content.NewsAPIKey,
		Timeout:        cfg.ContentTimeout(),
	}, content.Static{}, log)
}

// raceFactory builds a simulation per race and attaches telemetry when enabled
func raceFactory(cfg *config.Config, trk *track.Track, metrics *status.Registry, log zerolog.Logger) modes.RaceFactory {
	return func() (*engine.Simulation, error) {
		ecfg := engine.DefaultConfig()
		ecfg.AICount = cfg.AI.Count
		ecfg.TickRate = cfg.TickRate
		ecfg.Logger = log
		ecfg.Metrics = metrics

		sim, err := engine.New(trk, ecfg)
		if err != nil {
			return nil, err
		}

		exporter, err := telemetry.Connect(telemetry.Config{
			Enabled:    cfg.Influx.Enabled,
			URL:        cfg.Influx.URL,
			Token:      cfg.Influx.Token,
			Org:        cfg.Influx.Org,
			Bucket:     cfg.Influx.Bucket,
			BackupPath: cfg.Influx.BackupPath,
		}, sim.SessionID(), log)
		switch {
		case err == nil:
			sim.Subscribe(exporter)
			sim.OnClose(func() {
				if err := exporter.Close(); err != nil {
					log.Error().Err(err).Msg("Telemetry close failed")
				}
			})
		case errors.Is(err, telemetry.ErrDisabled):
		default:
			log.Warn().Err(err).Msg("Telemetry unavailable for this race")
		}
		return sim, nil
	}
}
