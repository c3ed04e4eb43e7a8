package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"sketchparty/internal/config"
	"sketchparty/internal/lobby"
	"sketchparty/internal/word"
	"sketchparty/internal/ws"
	"sketchparty/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger.Init(cfg.LogLevel)

	bank := word.Default()
	if cfg.WordFile != "" {
		bank, err = word.FromFile(cfg.WordFile)
		if err != nil {
			zap.S().Fatalf("load word file %s: %v", cfg.WordFile, err)
		}
	}

	hub := ws.NewHub()
	reg := lobby.NewRegistry(
		lobby.Settings{
			RoundSeconds:       cfg.RoundSeconds,
			RoundsPerGame:      cfg.RoundsPerGame,
			RevealSeconds:      cfg.RevealSeconds,
			PointsCorrectGuess: cfg.PointsCorrectGuess,
			PointsDrawingBonus: cfg.PointsDrawingBonus,
		},
		cfg.DefaultMaxPlayers,
		cfg.CodeBytes,
		bank,
		hub.ForLobby,
	)
	reg.StartSweeper(cfg.SweepInterval, cfg.InactivityTimeout)
	defer reg.Close()

	app := fiber.New()
	app.Use(cors.New())
	ws.NewGateway(reg, hub).Register(app)

	zap.S().Infof("server listening on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		zap.S().Fatalf("listen: %v", err)
	}
}
