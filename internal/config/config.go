package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/dot11dec/internal/logging"
)

// Config is the shared file config for dot11d and dot11dump.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Capture CaptureConfig `toml:"capture"`
	Log     LogConfig     `toml:"log"`
}

type ServerConfig struct {
	Name         string   `toml:"name"`
	Addr         string   `toml:"addr"`
	CorsOrigins  []string `toml:"cors_origins"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	IncludeBody  bool     `toml:"include_body"`
}

type CaptureConfig struct {
	// FCSPresent applies to raw 802.11 captures; radiotap captures say so per packet.
	FCSPresent    bool `toml:"fcs_present"`
	MaxFrameBytes int  `toml:"max_frame_bytes"`
}

type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Name:         "dot11d",
			Addr:         ":9200",
			CorsOrigins:  []string{"http://localhost:3000"},
			MaxBodyBytes: 64 * 1024,
			IncludeBody:  false,
		},
		Capture: CaptureConfig{
			FCSPresent:    true,
			MaxFrameBytes: 16 * 1024,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// fileConfig mirrors Config so unset keys can be told apart from zero values.
type fileConfig struct {
	Server struct {
		Name         string   `toml:"name"`
		Addr         string   `toml:"addr"`
		CorsOrigins  []string `toml:"cors_origins"`
		MaxBodyBytes int64    `toml:"max_body_bytes"`
		IncludeBody  bool     `toml:"include_body"`
	} `toml:"server"`
	Capture struct {
		FCSPresent    bool `toml:"fcs_present"`
		MaxFrameBytes int  `toml:"max_frame_bytes"`
	} `toml:"capture"`
	Log struct {
		Level string `toml:"level"`
		JSON  bool   `toml:"json"`
	} `toml:"log"`
}

// Load reads path and overlays the keys it defines onto DefaultConfig.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("server", "name") {
		cfg.Server.Name = strings.TrimSpace(raw.Server.Name)
	}
	if meta.IsDefined("server", "addr") {
		cfg.Server.Addr = strings.TrimSpace(raw.Server.Addr)
	}
	if meta.IsDefined("server", "cors_origins") {
		cfg.Server.CorsOrigins = raw.Server.CorsOrigins
	}
	if meta.IsDefined("server", "max_body_bytes") {
		cfg.Server.MaxBodyBytes = raw.Server.MaxBodyBytes
	}
	if meta.IsDefined("server", "include_body") {
		cfg.Server.IncludeBody = raw.Server.IncludeBody
	}
	if meta.IsDefined("capture", "fcs_present") {
		cfg.Capture.FCSPresent = raw.Capture.FCSPresent
	}
	if meta.IsDefined("capture", "max_frame_bytes") {
		cfg.Capture.MaxFrameBytes = raw.Capture.MaxFrameBytes
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "json") {
		cfg.Log.JSON = raw.Log.JSON
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Server.Name) == "" {
		return fmt.Errorf("server.name is required")
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return fmt.Errorf("server.addr is required")
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	if cfg.Capture.MaxFrameBytes <= 0 {
		return fmt.Errorf("capture.max_frame_bytes must be positive")
	}
	for i, origin := range cfg.Server.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("server.cors_origins[%d] is empty", i)
		}
	}
	if cfg.Log.Level != "" {
		if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
			return fmt.Errorf("log.level %q is not a known level", cfg.Log.Level)
		}
	}
	return nil
}
