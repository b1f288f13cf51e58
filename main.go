package main

import (
	"fmt"
	"log"

	"github.com/cluns13/loadedteaclub-backend/configs"
	"github.com/cluns13/loadedteaclub-backend/middlewares"
	"github.com/cluns13/loadedteaclub-backend/routes"
	"github.com/cluns13/loadedteaclub-backend/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedLookups(); err != nil {
		log.Fatalf("seed lookups failed: %v", err)
	}

	// HTTP
	r := gin.Default()

	r.Use(middlewares.CORSMiddleware())

	// Serve uploaded claim documents
	r.Static("/uploads", "./uploads")

	// Admin claim feed
	feed := ws.NewFeedHub()
	go feed.Run()

	routes.RegisterRoutes(r, cfg, feed)

	port := cfg.Port
	addr := fmt.Sprintf(":%s", port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
