package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/screenlux/screenlux-backend/internal/catalog"
	"github.com/screenlux/screenlux-backend/internal/common/config"
	"github.com/screenlux/screenlux-backend/internal/common/middleware"
	"github.com/screenlux/screenlux-backend/internal/server"
	"github.com/screenlux/screenlux-backend/internal/session"
)

func main() {
	cfg := config.Load()

	db, err := session.OpenSQLite(cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	store := session.New(db)
	if err := store.Init(context.Background(), "migrations/001_init_sessions.sql"); err != nil {
		log.Fatalf("init db: %v", err)
	}

	loader := catalog.NewLoader(cfg.CatalogDir)
	if _, err := loader.Load(cfg.StoreID); err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	if warns, err := loader.Check(cfg.StoreID); err == nil {
		for _, w := range warns {
			log.Printf("catalog: %s", w)
		}
	}

	// hot-reload catalogs on file change
	watcher := catalog.NewDirWatcher(cfg.CatalogDir, 5*time.Second, func(path string) {
		log.Printf("catalog changed: %s; reloading", path)
		loader.Invalidate()
		if _, err := loader.Load(cfg.StoreID); err != nil {
			log.Printf("catalog reload failed: %v", err)
		}
	})
	watcher.Start()
	defer watcher.Stop()

	handler := server.NewHandler(store, loader, cfg.StoreID)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Screenlux Configurator",
	})

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Get("/health/ready", func(c fiber.Ctx) error {
		if _, err := loader.Load(cfg.StoreID); err != nil {
			return c.Status(503).JSON(fiber.Map{"status": "catalog unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	app.Post("/api/sessions", handler.CreateSession)
	app.Get("/api/sessions/:id", handler.GetSession)
	app.Post("/api/sessions/:id/screens", handler.AddScreen)
	app.Put("/api/sessions/:id/screens/:idx", handler.UpdateScreen)
	app.Post("/api/sessions/:id/screens/:idx/duplicate", handler.DuplicateScreen)
	app.Delete("/api/sessions/:id/screens/:idx", handler.DeleteScreen)
	app.Put("/api/sessions/:id/installation", handler.SetInstallation)
	app.Put("/api/sessions/:id/accessories", handler.SetAccessory)
	app.Get("/api/sessions/:id/cart", handler.CartPayload)
	app.Get("/api/quote", handler.Quote)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Screenlux Configurator on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
