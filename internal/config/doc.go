// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for docchat.
//
// Configuration is read from a TOML file, overlaid with environment
// variables, and exposed through a process-wide global bound once at
// startup. The agent identifier and knowledge-base identifier are fixed
// for the lifetime of the session; there is no runtime reconfiguration.
package config
