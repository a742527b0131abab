package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	marsmission "github.com/neoragex2002/mars-mission"
	"github.com/neoragex2002/mars-mission/internal/asset"
	"github.com/neoragex2002/mars-mission/internal/httpapi"
	"github.com/neoragex2002/mars-mission/internal/wsapi"
)

func main() {
	port := flag.Int("port", 8712, "HTTP/WS listen port")
	configPath := flag.String("config", "", "engine config TOML file (optional)")
	staticDir := flag.String("static", "web/dist", "static asset directory served at /")
	assetURL := flag.String("asset-url", "", "optional glTF/GLB model to bootstrap at startup")
	assetPath := flag.String("asset-path", "web/dist/models/spacecraft.glb", "destination path for the bootstrapped asset")
	flag.Parse()

	logger := marsmission.NewLogger("marsrund")

	cfg, err := marsmission.LoadEngineConfig(*configPath)
	if err != nil {
		logger.Log("level", "error", "subsys", "marsrund", "status", "failed to load engine config", "err", err)
		os.Exit(1)
	}

	asset.Bootstrap(logger, *assetURL, *assetPath)

	engine, err := marsmission.NewEngine(cfg)
	if err != nil {
		logger.Log("level", "error", "subsys", "marsrund", "status", "failed to initialize engine", "err", err)
		os.Exit(1)
	}

	simulator := marsmission.NewSimulator(engine)
	ctx, cancel := context.WithCancel(context.Background())
	go simulator.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("/ws", wsapi.NewHub(engine, simulator))
	mux.Handle("/", httpapi.NewServer(engine, simulator, *staticDir))

	addr := fmt.Sprintf(":%d", *port)
	server := &http.Server{Addr: addr, Handler: mux}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Log("level", "info", "subsys", "marsrund", "status", "shutting down")
		simulator.Stop()
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Log("level", "info", "subsys", "marsrund", "status", "listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Log("level", "error", "subsys", "marsrund", "status", "server error", "err", err)
		os.Exit(1)
	}
}
