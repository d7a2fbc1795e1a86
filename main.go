// docchat TUI - A terminal chat interface for document Q&A agents.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/morganforge/docchat-tui/internal/agent"
	"github.com/morganforge/docchat-tui/internal/config"
	"github.com/morganforge/docchat-tui/internal/docs"
	"github.com/morganforge/docchat-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to config file (default ~/.docchat/config.toml)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("docchat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	// .env is optional; real environment variables still win inside Load.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	log, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open log: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: docchat needs an interactive terminal")
		os.Exit(1)
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())

	agentClient := agent.NewClient(cfg.Agent.Endpoint, cfg.Agent.AgentID, cfg.Agent.APIKey, log)
	docsClient := docs.NewClient(cfg.Docs.Endpoint, cfg.Docs.KnowledgeBaseID, cfg.Agent.APIKey, log)

	p := tea.NewProgram(
		chat.NewApp(chat.New(cfg, agentClient, docsClient, log)),
		tea.WithAltScreen(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Docs.WatchDir != "" {
		startWatcher(ctx, cfg.Docs.WatchDir, docsClient, log, p)
	}

	log.Info("docchat starting",
		zap.String("version", Version),
		zap.String("agent_endpoint", cfg.Agent.Endpoint),
		zap.String("kb", cfg.Docs.KnowledgeBaseID))

	if _, err := p.Run(); err != nil {
		log.Error("program failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startWatcher wires the watch folder into the running program. Uploads
// surface as DocumentUploadedMsg via p.Send, keeping the event loop the
// single writer of UI state.
func startWatcher(ctx context.Context, dir string, client *docs.Client, log *zap.Logger, p *tea.Program) {
	watcher, err := docs.NewWatcher(dir, client, log)
	if err != nil {
		log.Warn("watch folder disabled", zap.String("dir", dir), zap.Error(err))
		return
	}
	err = watcher.Start(ctx, func(ev docs.UploadEvent) {
		p.Send(chat.DocumentUploadedMsg{
			Document: ev.Document,
			Path:     ev.Path,
			Err:      ev.Err,
		})
	})
	if err != nil {
		log.Warn("watch folder disabled", zap.String("dir", dir), zap.Error(err))
	}
}

// newLogger builds the file logger. The TUI owns stdout, so nothing may
// log there.
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	path := cfg.Path
	if path == "" {
		path = config.DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.Set(cfg.Level); err != nil {
			return nil, err
		}
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	return zcfg.Build()
}
