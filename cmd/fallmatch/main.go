package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/fallmatch/config"
	debugui_ebiten "github.com/plus3/fallmatch/debugui/ebiten"
	"github.com/plus3/fallmatch/sound"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "YAML config file. Built-in defaults are used when empty.")
	level := flag.Int("level", -1, "Starting level. Overrides the config file when set.")
	seed := flag.Uint64("seed", 0, "Random seed. Overrides the config file when non-zero.")
	inspector := flag.Bool("inspector", false, "Show the ImGui inspector at startup (toggle with F1).")
	mute := flag.Bool("mute", false, "Disable sound.")
	volume := flag.Float64("volume", 0.4, "Sound volume between 0 and 1.")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *level >= 0 {
		cfg.Level = *level
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	player := sound.Silent()
	if !*mute {
		if player, err = sound.NewPlayer(*volume); err != nil {
			logger.Warn("sound disabled", zap.Error(err))
			player = sound.Silent()
		}
	}

	w, h := screenSize(cfg.Board.Rows, cfg.Board.Cols)
	backend := debugui_ebiten.NewImguiBackend("fallmatch", w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Timing.TickRate)

	game, err := newGame(cfg, logger, player, backend)
	if err != nil {
		logger.Fatal("Failed to start game", zap.Error(err))
	}
	if !*inspector {
		game.overlay.Toggle()
	}

	logger.Info("starting",
		zap.Int("level", cfg.Level),
		zap.Uint64("seed", cfg.Seed),
		zap.Duration("tick", cfg.TickDuration()),
	)

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("Game exited with error", zap.Error(err))
	}
}
