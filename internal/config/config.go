// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultAgentID is the identifier of the question-answering agent.
	DefaultAgentID = "kb-qa-agent"

	// DefaultKnowledgeBaseID is the document collection the agent searches.
	DefaultKnowledgeBaseID = "default"

	// DefaultAgentEndpoint is the base URL of the agent service.
	DefaultAgentEndpoint = "http://localhost:8800"

	// DefaultDocsEndpoint is the base URL of the document store service.
	DefaultDocsEndpoint = "http://localhost:8801"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete docchat configuration.
type Config struct {
	Version string `toml:"version"`

	Agent AgentConfig `toml:"agent"`
	Docs  DocsConfig  `toml:"docs"`
	Log   LogConfig   `toml:"log"`
	UI    UIConfig    `toml:"ui"`
}

// AgentConfig describes the remote question-answering agent.
type AgentConfig struct {
	// Endpoint is the base URL of the agent service.
	Endpoint string `toml:"endpoint"`
	// AgentID is sent with every query to select the agent.
	AgentID string `toml:"agent_id"`
	// APIKey authenticates against the agent service. Prefer the
	// DOCCHAT_API_KEY environment variable over storing it in the file.
	APIKey string `toml:"api_key"`
}

// DocsConfig describes the remote document store.
type DocsConfig struct {
	// Endpoint is the base URL of the document service.
	Endpoint string `toml:"endpoint"`
	// KnowledgeBaseID scopes all uploads, listings, and deletions.
	KnowledgeBaseID string `toml:"knowledge_base_id"`
	// WatchDir, when set, is a local folder whose new files are uploaded
	// automatically. Empty disables the watcher.
	WatchDir string `toml:"watch_dir"`
}

// LogConfig controls the file logger. The TUI owns stdout, so logs go to a
// file.
type LogConfig struct {
	// Path is the log file location (empty = ~/.docchat/docchat.log).
	Path string `toml:"path"`
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`
}

// UIConfig contains presentation options.
type UIConfig struct {
	// Markdown renders answer text through the markdown renderer.
	Markdown bool `toml:"markdown"`
	// SidebarOpen opens the document sidebar at startup.
	SidebarOpen bool `toml:"sidebar_open"`
}

// =============================================================================
// DEFAULTS AND LOADING
// =============================================================================

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Version: "1",
		Agent: AgentConfig{
			Endpoint: DefaultAgentEndpoint,
			AgentID:  DefaultAgentID,
		},
		Docs: DocsConfig{
			Endpoint:        DefaultDocsEndpoint,
			KnowledgeBaseID: DefaultKnowledgeBaseID,
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			Markdown: true,
		},
	}
}

// DefaultPath returns the default config file location (~/.docchat/config.toml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".docchat", "config.toml")
}

// DefaultLogPath returns the default log file location.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "docchat.log"
	}
	return filepath.Join(home, ".docchat", "docchat.log")
}

// Load reads the config file at path, overlays environment variables, and
// validates the result. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, derr := toml.Decode(string(data), cfg); derr != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, derr)
		}
	case errors.Is(err, os.ErrNotExist):
		// No file: defaults plus environment.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays DOCCHAT_* environment variables. Environment always wins
// over file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("DOCCHAT_AGENT_ENDPOINT"); v != "" {
		c.Agent.Endpoint = v
	}
	if v := os.Getenv("DOCCHAT_AGENT_ID"); v != "" {
		c.Agent.AgentID = v
	}
	if v := os.Getenv("DOCCHAT_API_KEY"); v != "" {
		c.Agent.APIKey = v
	}
	if v := os.Getenv("DOCCHAT_DOCS_ENDPOINT"); v != "" {
		c.Docs.Endpoint = v
	}
	if v := os.Getenv("DOCCHAT_KB_ID"); v != "" {
		c.Docs.KnowledgeBaseID = v
	}
	if v := os.Getenv("DOCCHAT_WATCH_DIR"); v != "" {
		c.Docs.WatchDir = v
	}
	if v := os.Getenv("DOCCHAT_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
	if v := os.Getenv("DOCCHAT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("DOCCHAT_MARKDOWN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UI.Markdown = b
		}
	}
}

// Validate checks structural requirements.
func (c *Config) Validate() error {
	if _, err := url.Parse(c.Agent.Endpoint); err != nil {
		return fmt.Errorf("invalid agent endpoint %q: %w", c.Agent.Endpoint, err)
	}
	if _, err := url.Parse(c.Docs.Endpoint); err != nil {
		return fmt.Errorf("invalid docs endpoint %q: %w", c.Docs.Endpoint, err)
	}
	if c.Agent.AgentID == "" {
		return errors.New("agent.agent_id must not be empty")
	}
	if c.Docs.KnowledgeBaseID == "" {
		return errors.New("docs.knowledge_base_id must not be empty")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// =============================================================================
// GLOBAL CONFIG
// =============================================================================

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// SetGlobal binds the process-wide configuration. Called once at startup.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}

// Global returns the process-wide configuration, or defaults if SetGlobal
// was never called.
func Global() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalCfg == nil {
		return Default()
	}
	return globalCfg
}
