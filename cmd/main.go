package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/deshmukhatharva11/innovation-hub-sub002/config"
	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/dispatch"
	conversation_repo "github.com/deshmukhatharva11/innovation-hub-sub002/internal/repo/conversation"
	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/routers"
	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/websocket"
	"github.com/deshmukhatharva11/innovation-hub-sub002/state"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// initialize the application
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appState, err := state.InitAppState(ctx, stop)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application state")
	}
	defer appState.Close()

	wsHub := websocket.NewHub()
	log.Info().Msg("Websocket hub initialized")

	store := conversation_repo.NewConversationRepo(appState.DB)
	dispatcher := dispatch.NewDispatcher(store, wsHub)
	signaler := dispatch.NewSignaler(wsHub)
	router := dispatch.NewRouter(dispatcher, signaler, wsHub)

	authFunc := websocket.JWTAuthenticator(appState.JwtSecret.Public, appState.Redis)

	wsHandler := websocket.NewWSHandler(wsHub, authFunc, router)
	if config.Conf.WS.MaxConnections > 0 {
		wsHandler.MaxConnections = config.Conf.WS.MaxConnections
	}
	if config.Conf.WS.HandshakeTimeoutSeconds > 0 {
		wsHandler.HandshakeTimeout = time.Duration(config.Conf.WS.HandshakeTimeoutSeconds) * time.Second
	}
	log.Info().Msg("Websocket handler initialized")

	r := routers.NewRouter(wsHub, wsHandler)

	server := &http.Server{
		Addr:         config.Conf.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// serve the application
	go func() {
		log.Info().Msgf("Starting server on http://localhost%s", config.Conf.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(fmt.Sprintf("ListenAndServe failed: %v", err))
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown initiated...")
	// gracefully shutdown the application
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Graceful shutdown failed: %v\n", err)
	} else {
		fmt.Println("Server exited gracefully.")
	}
	wsHub.Close()
}
