package main

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wordparty/internal/config"
	"wordparty/internal/content"
	"wordparty/internal/room"
	"wordparty/logger"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel)

	provider := content.NewOpenRouter(cfg.ProviderURL, cfg.ProviderModel, cfg.APIKey, cfg.ProviderTimeout)
	reg := room.NewRegistry(provider)

	app := fiber.New()
	app.Use(cors.New())

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		p := room.NewPlayer(uuid.NewString(), c)
		log.Info().Str("player", p.ID).Msg("client connected")
		go p.ReadPump(reg)
		p.WritePump()
	}))

	app.Get("/api/rooms", func(c *fiber.Ctx) error {
		return c.JSON(reg.Snapshot())
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	log.Info().Str("port", cfg.Port).Msg("server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
