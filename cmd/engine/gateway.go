package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dnd-combat-engine/internal/broadcast/pubsub"
	"github.com/KirkDiggler/dnd-combat-engine/internal/broadcast/websocket"
)

var allowedOrigins []string

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Relay game events from Redis to websocket clients",
	Long:  `Subscribes to every game channel in Redis and streams each game's events to websocket clients connected at /ws?game_id=<id>.`,
	RunE:  runGateway,
}

func init() {
	gatewayCmd.Flags().StringSliceVar(&allowedOrigins, "allowed-origin", nil, "origins allowed to open a websocket")
}

func runGateway(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.Redis.Enabled() {
		return errors.New("the gateway needs REDIS_URL")
	}
	client, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer client.Close()

	sub, err := pubsub.Subscribe(ctx, &pubsub.Config{Client: client, ChannelPrefix: cfg.Redis.ChannelPrefix})
	if err != nil {
		return err
	}
	defer sub.Close()

	hub := websocket.NewHub(&websocket.Config{AllowedOrigins: allowedOrigins})

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	srv := &http.Server{Addr: cfg.Gateway.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := sub.Run(ctx, hub.Relay); err != nil {
			log.Printf("Gateway: subscription stopped: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		log.Println("Received shutdown signal, gracefully stopping...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Gateway: listening on %s", cfg.Gateway.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
