package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/cmd/app"
	"github.com/meverselabs/partyround/cmd/config"
	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/key"
)

// Config is a configuration for the node
type Config struct {
	StoreRoot   string        `toml:"StoreRoot" yaml:"storeRoot"`
	CacheSize   int           `toml:"CacheSize" yaml:"cacheSize"`
	RPCBind     string        `toml:"RPCBind" yaml:"rpcBind"`
	LogLevel    string        `toml:"LogLevel" yaml:"logLevel"`
	AdminKeyHex string        `toml:"AdminKeyHex" yaml:"adminKeyHex"`
	Genesis     GenesisConfig `toml:"Genesis" yaml:"genesis"`
}

// GenesisConfig describes the ledgers created on an empty store
type GenesisConfig struct {
	BaseName        string            `toml:"BaseName" yaml:"baseName"`
	BaseSymbol      string            `toml:"BaseSymbol" yaml:"baseSymbol"`
	OwnershipName   string            `toml:"OwnershipName" yaml:"ownershipName"`
	OwnershipSymbol string            `toml:"OwnershipSymbol" yaml:"ownershipSymbol"`
	Balances        map[string]uint64 `toml:"Balances" yaml:"balances"`
}

// applyDefaults fills the fields left empty by the config file
func (cfg *Config) applyDefaults() {
	if cfg.StoreRoot == "" {
		cfg.StoreRoot = "./ndata"
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 500
	}
	if cfg.RPCBind == "" {
		cfg.RPCBind = ":48000"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	g := &cfg.Genesis
	if g.BaseName == "" {
		g.BaseName = "Base"
	}
	if g.BaseSymbol == "" {
		g.BaseSymbol = "BASE"
	}
	if g.OwnershipName == "" {
		g.OwnershipName = "Party"
	}
	if g.OwnershipSymbol == "" {
		g.OwnershipSymbol = "PTY"
	}
	if g.Balances == nil {
		g.Balances = map[string]uint64{}
	}
}

// loadConfig reads the file when it exists and applies the PARTYROUND_ environment overrides
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); err == nil {
		if err := config.LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	cfg.StoreRoot = config.Getenv("PARTYROUND_STORE_ROOT", cfg.StoreRoot)
	cfg.RPCBind = config.Getenv("PARTYROUND_RPC_BIND", cfg.RPCBind)
	cfg.LogLevel = config.Getenv("PARTYROUND_LOG_LEVEL", cfg.LogLevel)
	cfg.AdminKeyHex = config.Getenv("PARTYROUND_ADMIN_KEY", cfg.AdminKeyHex)
	if v := os.Getenv("PARTYROUND_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrap(err, "PARTYROUND_CACHE_SIZE")
		}
		cfg.CacheSize = n
	}
	return cfg, nil
}

func (cfg *Config) deploymentPath() string {
	return filepath.Join(cfg.StoreRoot, "deployment.json")
}

func (cfg *Config) contextPath() string {
	return filepath.Join(cfg.StoreRoot, "context")
}

// adminKey returns the configured key, or the one kept in the store root, creating it on first run
func (cfg *Config) adminKey() (*key.MemoryKey, error) {
	if len(cfg.AdminKeyHex) > 0 {
		return key.NewMemoryKeyFromHex(cfg.AdminKeyHex)
	}
	path := filepath.Join(cfg.StoreRoot, "admin.key")
	if bs, err := os.ReadFile(path); err == nil {
		return key.NewMemoryKeyFromBytes(bs)
	}
	k, err := key.NewMemoryKey()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.StoreRoot, 0o755); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := os.WriteFile(path, k.Bytes(), 0o600); err != nil {
		return nil, errors.WithStack(err)
	}
	return k, nil
}

func (cfg *Config) genesis(admin common.Address) (*app.Genesis, error) {
	balances := map[common.Address]uint64{}
	for k, v := range cfg.Genesis.Balances {
		addr, err := common.ParseAddress(k)
		if err != nil {
			return nil, errors.Wrap(err, k)
		}
		balances[addr] = v
	}
	return &app.Genesis{
		Admin:           admin,
		BaseName:        cfg.Genesis.BaseName,
		BaseSymbol:      cfg.Genesis.BaseSymbol,
		Balances:        balances,
		OwnershipName:   cfg.Genesis.OwnershipName,
		OwnershipSymbol: cfg.Genesis.OwnershipSymbol,
	}, nil
}
