// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads gateway settings from the environment and, optionally, the action
// catalog from a YAML file
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/blinklabs-io/actiongate/action"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "ACTIONGATE_"

type Config struct {
	ListenAddress string        `env:"LISTEN_ADDRESS" envDefault:":8080"`
	Cluster       string        `env:"CLUSTER"        envDefault:"devnet"`
	RPCURL        string        `env:"RPC_URL"`
	ChainID       string        `env:"CHAIN_ID"`
	Commitment    string        `env:"COMMITMENT"     envDefault:"confirmed"`
	RPCTimeout    time.Duration `env:"RPC_TIMEOUT"    envDefault:"10s"`
	ActionVersion string        `env:"ACTION_VERSION" envDefault:"2.1.3"`
	APIPrefix     string        `env:"API_PREFIX"     envDefault:"/api/actions"`
	LogLevel      string        `env:"LOG_LEVEL"      envDefault:"info"`
	RateLimit     float64       `env:"RATE_LIMIT"     envDefault:"0"`
	RateBurst     int           `env:"RATE_BURST"     envDefault:"10"`
	// OTELEndpoint is an OTLP/HTTP collector URL. Tracing is off when empty
	OTELEndpoint    string  `env:"OTEL_ENDPOINT"`
	OTELSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
	// CatalogFile names a YAML catalog that replaces the Transfer action below
	CatalogFile string         `env:"CATALOG_FILE"`
	Transfer    TransferConfig `envPrefix:"TRANSFER_"`
}

// TransferConfig describes the default SOL transfer action
type TransferConfig struct {
	ID          string   `env:"ID"          envDefault:"transfer-sol"`
	Title       string   `env:"TITLE"       envDefault:"Send SOL"`
	Description string   `env:"DESCRIPTION" envDefault:"Send SOL to another Solana wallet"`
	Icon        string   `env:"ICON"        envDefault:"/solana_devnet.png"`
	Label       string   `env:"LABEL"       envDefault:"Send SOL"`
	BaseAmount  string   `env:"BASE_AMOUNT" envDefault:"0.01"`
	Presets     []uint64 `env:"PRESETS"     envDefault:"1,5,10" envSeparator:","`
	Recipient   string   `env:"RECIPIENT"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.ListenAddress == "" {
		return errors.New("listen address must not be empty")
	}
	if c.RPCTimeout <= 0 {
		return fmt.Errorf("invalid RPC timeout: %s", c.RPCTimeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid rate limit: %v", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		return fmt.Errorf("invalid rate limit burst: %d", c.RateBurst)
	}
	if c.OTELSampleRatio < 0 || c.OTELSampleRatio > 1 {
		return fmt.Errorf("invalid trace sample ratio: %v", c.OTELSampleRatio)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// TransferSpec returns the transfer action described by the environment
func (c *Config) TransferSpec() *action.Transfer {
	return &action.Transfer{
		ID:          c.Transfer.ID,
		Title:       c.Transfer.Title,
		Description: c.Transfer.Description,
		Icon:        c.Transfer.Icon,
		Label:       c.Transfer.Label,
		BaseAmount:  c.Transfer.BaseAmount,
		Presets:     c.Transfer.Presets,
		Recipient:   c.Transfer.Recipient,
	}
}

// LoadCatalog returns the catalog to serve: the contents of CatalogFile when set, otherwise the
// single transfer action from the environment. Routing rules are only ever set by a catalog file
func (c *Config) LoadCatalog() (*Catalog, error) {
	if c.CatalogFile != "" {
		return LoadCatalogFile(c.CatalogFile)
	}
	catalog, err := action.NewCatalog(c.TransferSpec())
	if err != nil {
		return nil, fmt.Errorf("transfer action: %w", err)
	}
	return &Catalog{Actions: catalog}, nil
}
