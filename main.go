package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chatscene/app"
	"chatscene/game"
	"chatscene/hal"
	"chatscene/internal/buildinfo"
	"chatscene/internal/config"
	"chatscene/internal/logging"
	"chatscene/scene"
)

var (
	cfgFile string
	v       = config.New()
	cfg     config.Config
	logger  = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "chatscene",
	Short: "3D scene with a chat overlay",
	Long: `chatscene renders a small software-rasterized scene with a first-person
camera and a channel-filtered chat window drawn on top.

Keys: WASD/Space/C move, arrows pan, mouse looks, Enter chats, Tab cycles
channels, F1 view all, F2 rename, F3 colour, F4 history length, Esc quits.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		logger = logging.New(os.Stderr, cfg.LogLevel, false)
		logger.Debug().Str("config", v.ConfigFileUsed()).Msg("config loaded")
		return nil
	},
	RunE: run,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "chatscene", buildinfo.String())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./chatscene.toml when present)")
	rootCmd.PersistentFlags().String("log-level", "info", "trace, debug, info, warn or error")
	rootCmd.Flags().String("scene", "", "scene TOML file")
	rootCmd.Flags().Bool("headless", false, "Run without a window.")
	rootCmd.Flags().Int("hz", 60, "Tick rate in headless mode.")
	rootCmd.Flags().Uint64("ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")

	_ = v.BindPFlag("logLevel", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("scene.path", rootCmd.Flags().Lookup("scene"))
	_ = v.BindPFlag("headless.enabled", rootCmd.Flags().Lookup("headless"))
	_ = v.BindPFlag("headless.hz", rootCmd.Flags().Lookup("hz"))
	_ = v.BindPFlag("headless.ticks", rootCmd.Flags().Lookup("ticks"))

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	sc := scene.Default()
	if cfg.Scene.Path != "" {
		var err error
		if sc, err = scene.Load(cfg.Scene.Path); err != nil {
			return err
		}
	}

	settings := app.Settings(game.Settings{
		MoveSpeed:    cfg.Player.MoveSpeed,
		Sensitivity:  mgl32.Vec2{cfg.Mouse.SensitivityX, cfg.Mouse.SensitivityY},
		PruneEnabled: cfg.Chat.PruneEnabled,
		MaxLength:    cfg.Chat.MaxLength,
	}, sc)

	opts := hal.Options{
		Width:  cfg.Window.Width / cfg.Window.Scale,
		Height: cfg.Window.Height / cfg.Window.Scale,
		Scale:  cfg.Window.Scale,
		Title:  cfg.Window.Title,
		Logger: logger,
	}
	newApp := func(h hal.HAL) func() error {
		return app.New(h, app.Config{Game: settings, Scene: sc, ExitOnPanic: cfg.Headless.Enabled})
	}

	logger.Info().
		Str("version", buildinfo.Short()).
		Bool("headless", cfg.Headless.Enabled).
		Str("scene", cfg.Scene.Path).
		Msg("starting")

	if cfg.Headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err := hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{Options: opts, Hz: cfg.Headless.Hz, Ticks: cfg.Headless.Ticks})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return hal.RunWindow(newApp, opts)
}
