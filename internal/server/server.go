// Package server assembles the HTTP server from its parts.
package server

import (
	"fmt"
	"net/http"
	"time"

	"CampusHire-backend/internal/auth"
	"CampusHire-backend/internal/config"
	"CampusHire-backend/internal/database"
)

// MyServer holds the shared dependencies behind the HTTP handlers.
type MyServer struct {
	DB        *database.DBinstanceStruct
	Config    *config.Config
	Tokens    *auth.TokenManager
	Blacklist auth.JwtBlacklistStore
}

// NewServer connects to the database and returns a configured http.Server
// ready to listen.
func NewServer(cfg *config.Config) (*http.Server, error) {
	db, err := database.NewDBInstance(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	newServer := &MyServer{
		DB:        db,
		Config:    cfg,
		Tokens:    auth.NewTokenManager(cfg.SecretKey),
		Blacklist: auth.NewInMemoryBlacklistStore(),
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      newServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}
