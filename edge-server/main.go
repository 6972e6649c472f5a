package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"office-dashboard/config"
	"office-dashboard/logging"
	"office-dashboard/shared"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboards are served from a different origin than the edge.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "edge-server",
		Short:        "Push live seating and chart views to dashboard browsers",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", os.Getenv("DASHBOARD_CONFIG"), "path to a YAML config file")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("edge-server")

	logger.Info("starting edge server", zap.String("port", cfg.Edge.Port))

	natsConn, err := connectNATS(cfg.NATS, logger)
	if err != nil {
		return err
	}
	defer natsConn.Close()
	logger.Info("connected to nats", zap.String("url", cfg.NATS.URL))

	client := NewDashboardClient(cfg.Edge.SnapshotServiceURL)
	if err := client.HealthCheck(ctx); err != nil {
		// The snapshot service may start later; views load on first use.
		logger.Warn("snapshot service not reachable yet", zap.String("url", cfg.Edge.SnapshotServiceURL), zap.Error(err))
	}

	hub := newHub(client, logger.Named("hub"))
	go hub.run(ctx)

	sub, err := natsConn.Subscribe(shared.NATSTopicAllDashboard, snapshotEventHandler(ctx, hub, logger))
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", shared.NATSTopicAllDashboard, err)
	}
	defer func() { _ = sub.Unsubscribe() }()
	logger.Info("subscribed to dashboard events", zap.String("subject", shared.NATSTopicAllDashboard))

	server := &http.Server{
		Addr:              cfg.Edge.Port,
		Handler:           setupRoutes(hub),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	logger.Info("edge server listening", zap.String("addr", server.Addr))

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	}

	logger.Info("shutting down edge server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	<-hub.done
	return nil
}

func connectNATS(cfg config.NATSConfig, logger *zap.Logger) (*nats.Conn, error) {
	name := cfg.Name
	if name == "" {
		name = "edge-server"
	}

	opts := []nats.Option{
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			logger.Error("nats error", zap.Error(err))
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats %s: %w", cfg.URL, err)
	}
	if !conn.IsConnected() {
		conn.Close()
		return nil, errors.New("nats connection not established")
	}
	return conn, nil
}

// snapshotEventHandler turns NATS snapshot events into hub refreshes. NATS
// delivers messages of one subscription in order on a single goroutine, so
// refreshes never overlap.
func snapshotEventHandler(ctx context.Context, hub *Hub, logger *zap.Logger) nats.MsgHandler {
	logger = logging.OrNop(logger)
	return func(msg *nats.Msg) {
		event, err := decodeSnapshotEvent(msg.Data)
		if err != nil {
			logger.Error("failed to parse nats event", zap.String("subject", msg.Subject), zap.Error(err))
			return
		}
		logger.Debug("received snapshot event",
			zap.String("subject", msg.Subject),
			zap.String("type", event.Type),
			zap.Int64("seq", event.Seq),
		)

		fetchCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		hub.handleSnapshotEvent(fetchCtx, event)
	}
}

func setupRoutes(hub *Hub) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(shared.WebSocketEndpoint, func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(hub, w, r)
	})
	mux.HandleFunc(shared.APIEndpointHealth, handleHealth)
	mux.HandleFunc(shared.APIEndpointStats, func(w http.ResponseWriter, r *http.Request) {
		handleStats(hub, w, r)
	})
	return mux
}

func handleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := newClient(hub, conn)
	if !hub.Register(client) {
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	client.logger.Info("websocket client connected", zap.String("remote_addr", r.RemoteAddr))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "edge-server"})
}

func handleStats(hub *Hub, w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, hub.GetStats())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
