package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gearlog-server/internal/config"
	"gearlog-server/internal/handler"
	"gearlog-server/internal/middleware"
	"gearlog-server/internal/repository"
	"gearlog-server/internal/service"
	"gearlog-server/internal/strava"
	"gearlog-server/internal/websocket"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := repository.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	location, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		log.Fatalf("Invalid calendar timezone %q: %v", cfg.Calendar.Timezone, err)
	}

	activityRepo := repository.NewActivityRepository(db)
	replacementRepo := repository.NewReplacementRepository(db)
	bikeRepo := repository.NewBikeRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	stravaClient := strava.NewClient(cfg.Strava.ClientID, cfg.Strava.ClientSecret, cfg.Strava.RedirectURI)

	hub := websocket.NewHub(cfg.WebSocket.WriteWait, cfg.WebSocket.PongWait, cfg.WebSocket.PingPeriod)
	go hub.Run()

	statsService := service.NewStatsService(activityRepo, replacementRepo)
	replacementService := service.NewReplacementService(replacementRepo, activityRepo)
	tokenService := service.NewTokenService(tokenRepo, stravaClient)
	syncService := service.NewSyncService(activityRepo, tokenService, stravaClient)
	activityService := service.NewActivityService(activityRepo)
	calendarService := service.NewCalendarService(activityRepo, location)
	componentService := service.NewComponentService(bikeRepo)
	resetService := service.NewResetService(activityRepo, replacementRepo, bikeRepo, tokenRepo)

	categoryHandler := handler.NewCategoryHandler(statsService, replacementService, hub)
	activityHandler := handler.NewActivityHandler(activityService, calendarService)
	stravaHandler := handler.NewStravaHandler(stravaClient, tokenService, syncService, hub)
	componentHandler := handler.NewComponentHandler(componentService)
	adminHandler := handler.NewAdminHandler(resetService, hub)
	wsHandler := handler.NewWebSocketHandler(hub)

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/categories/stats", categoryHandler.Stats).Methods("GET", "OPTIONS")
	api.HandleFunc("/categories/history", categoryHandler.History).Methods("GET", "OPTIONS")
	api.HandleFunc("/categories/replace", categoryHandler.Replace).Methods("POST", "OPTIONS")
	api.HandleFunc("/categories/history/{category}", categoryHandler.ResetHistory).Methods("DELETE", "OPTIONS")

	api.HandleFunc("/activities", activityHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/activities/calendar", activityHandler.Calendar).Methods("GET", "OPTIONS")
	api.HandleFunc("/activities/stats", activityHandler.Totals).Methods("GET", "OPTIONS")
	api.HandleFunc("/activities/{id}", activityHandler.Get).Methods("GET", "OPTIONS")

	api.HandleFunc("/strava/auth", stravaHandler.Auth).Methods("GET", "OPTIONS")
	api.HandleFunc("/strava/callback", stravaHandler.Callback).Methods("GET", "OPTIONS")
	api.HandleFunc("/strava/token", stravaHandler.Token).Methods("GET", "OPTIONS")
	api.HandleFunc("/strava/sync", stravaHandler.Sync).Methods("POST", "OPTIONS")

	api.HandleFunc("/components/bikes", componentHandler.ListBikes).Methods("GET", "OPTIONS")
	api.HandleFunc("/components/bikes", componentHandler.CreateBike).Methods("POST", "OPTIONS")
	api.HandleFunc("/components/bikes/{bikeId}/components", componentHandler.ListComponents).Methods("GET", "OPTIONS")
	api.HandleFunc("/components/bikes/{bikeId}/components", componentHandler.CreateComponent).Methods("POST", "OPTIONS")
	api.HandleFunc("/components/bikes/{bikeId}/components/{componentId}", componentHandler.ComponentDetail).Methods("GET", "OPTIONS")
	api.HandleFunc("/components/bikes/{bikeId}/components/{componentId}/activities", componentHandler.LinkActivities).Methods("POST", "OPTIONS")

	api.HandleFunc("/reset", adminHandler.Reset).Methods("POST", "OPTIONS")

	r.HandleFunc("/ws", wsHandler.HandleConnection)
	r.HandleFunc("/health", healthHandler(hub)).Methods("GET")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting Gearlog Server on %s (env: %s)", addr, cfg.Server.Env)
		log.Printf("Database at %s, calendar timezone %s", cfg.Database.Path, cfg.Calendar.Timezone)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}

func healthHandler(hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":"gearlog-server","ws_connections":%d}`, hub.ConnectionCount())
	}
}
