package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"followerwatch/internal/agent"
	"followerwatch/internal/config"
	"followerwatch/internal/github"
	"followerwatch/internal/logger"
	"followerwatch/internal/notifier"
	"followerwatch/internal/snapshot"
)

func main() {
	os.Exit(run())
}

func run() int {
	once := flag.Bool("once", false, "run a single check cycle and exit")
	test := flag.Bool("test", false, "validate configuration and exit")
	flag.Parse()

	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("invalid configuration: %v", err)
		return 1
	}

	logFile, err := setupLogOutput(cfg.LogFile)
	if err != nil {
		log.Printf("setting up log file: %v", err)
		return 1
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.SetLevel(cfg.LogLevel)
	logger.Infof("initialized follower watch for user: %s", cfg.GitHub.Username)

	notif, err := notifier.New(cfg.Notify)
	if err != nil {
		logger.Errorf("selecting notifier: %v", err)
		return 1
	}
	ag := agent.New(cfg, github.NewClient(cfg.GitHub.Token), snapshot.NewStore(cfg.FollowersFile), notif)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Infof("shutdown signal received")
		cancel()
	}()

	switch {
	case *test:
		if err := ag.Test(); err != nil {
			logger.Errorf("configuration test failed: %v", err)
			return 1
		}
		logger.Infof("configuration is valid")
		return 0
	case *once:
		n, err := ag.RunCycle(ctx)
		if err != nil {
			logger.Errorf("check failed: %v", err)
			return 1
		}
		logger.Infof("check completed, found %d new follower(s)", n)
		return 0
	default:
		ag.Run(ctx)
		return 0
	}
}

// setupLogOutput mirrors log records to stdout and the configured file.
// An empty path keeps stdout-only logging.
func setupLogOutput(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, file)
	log.SetOutput(mw)
	logger.SetOutput(mw)
	return file, nil
}
