package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/spherefocus/audio"
	"github.com/lixenwraith/spherefocus/config"
	"github.com/lixenwraith/spherefocus/engine"
	"github.com/lixenwraith/spherefocus/network"
	"github.com/lixenwraith/spherefocus/service"
	"github.com/lixenwraith/spherefocus/status"
	"github.com/lixenwraith/spherefocus/terminal"
)

type runFlags struct {
	logFile   string
	port      int
	noNetwork bool
	noPrompt  bool
	audio     bool
	windows   int
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the layout on a simulated terminal desktop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			f.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runDesktop(cmd.Context(), cfg, f.windows)
		},
	}

	cmd.Flags().StringVar(&f.logFile, "log-file", "", "log file (default "+config.DefaultLogPath()+")")
	cmd.Flags().IntVarP(&f.port, "port", "p", 0, "UDP command port")
	cmd.Flags().BoolVar(&f.noNetwork, "no-network", false, "disable the UDP command listener")
	cmd.Flags().BoolVar(&f.noPrompt, "no-prompt", false, "place new windows with the default action instead of asking")
	cmd.Flags().BoolVar(&f.audio, "audio", false, "play audible cues")
	cmd.Flags().IntVarP(&f.windows, "windows", "w", 3, "windows open at startup")
	return cmd
}

// apply overrides config values with flags the user set explicitly
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if flags.Changed("port") {
		cfg.Network.Port = f.port
	}
	if f.noNetwork {
		cfg.Network.Enabled = false
	}
	if f.noPrompt {
		cfg.Placement.Prompt = false
	}
	if flags.Changed("audio") {
		cfg.Audio.Enabled = f.audio
	}
}

// runDesktop wires the services and blocks until the user quits or ctx is cancelled
// Returns ctx's error on cancellation so the caller can report the signal
func runDesktop(ctx context.Context, cfg config.Config, windows int) error {
	logFile, err := openLogFile(cfg.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg.LogLevel())

	engineCfg, err := cfg.EngineSettings()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}

	runCtx, quit := context.WithCancel(ctx)
	defer quit()

	registry := status.NewRegistry()
	player := audio.NewPlayer(logger)
	desktop := terminal.NewDesktop(screen,
		terminal.WithLogger(logger),
		terminal.WithGeometry(engineCfg.Geometry),
		terminal.WithStatus(registry),
		terminal.WithQuit(quit),
	)
	eng := engine.New(engineCfg, desktop,
		engine.WithLogger(logger),
		engine.WithPlacementUI(desktop),
		engine.WithCues(player),
		engine.WithStatus(registry),
	)
	listener := network.NewService(eng, logger)

	// Startup windows exist before the engine seeds its ring
	for range windows {
		desktop.Open("")
	}
	desktop.Attach(eng)

	hub := service.NewHub()
	for _, reg := range []struct {
		svc  service.Service
		args []any
	}{
		{player, []any{cfg.AudioSettings()}},
		{desktop, []any{engineCfg.Geometry}},
		{eng, []any{engineCfg}},
		{listener, []any{cfg.NetworkSettings()}},
	} {
		if err := hub.Register(reg.svc, reg.args...); err != nil {
			return err
		}
	}

	if err := hub.InitAll(); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	logger.Info("started", "services", hub.Order(), "listen", listener.LocalAddr(), "windows", windows)

	<-runCtx.Done()

	stopErr := hub.StopAll()
	if stopErr != nil {
		logger.Error("shutdown", "err", stopErr)
	}
	logger.Info("stopped")
	return errors.Join(stopErr, ctx.Err())
}
