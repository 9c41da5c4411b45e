// Package config loads the client settings from a TOML file, the PORT
// environment variable and command line flags, in increasing priority
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/termchat/terminal"
)

// DefaultPath is used when no -config flag is given
const DefaultPath = "termchat.toml"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid")

// Config is the complete client configuration
type Config struct {
	Name   string `toml:"name"`
	FPS    int    `toml:"fps"`
	DBPath string `toml:"db_path"`
	Schema string `toml:"schema"` // optional DDL file applied instead of the built-in schema

	Network  Network           `toml:"network"`
	Terminal Terminal          `toml:"terminal"`
	Log      Log               `toml:"log"`
	Audio    Audio             `toml:"audio"`
	Keys     map[string]string `toml:"keys"`
}

// Network configures the peer messaging sockets
type Network struct {
	ListenHost  string        `toml:"listen_host"`
	Port        int           `toml:"port"`
	MaxDatagram int           `toml:"max_datagram"`
	SendTimeout time.Duration `toml:"send_timeout"`
	QueueSize   int           `toml:"queue_size"`
	Listen      bool          `toml:"listen"`
}

// Terminal selects the output driver
type Terminal struct {
	Driver        string        `toml:"driver"` // "ansi" or "tcell"
	Color         string        `toml:"color"`  // "auto", "256" or "truecolor"
	EscapeTimeout time.Duration `toml:"escape_timeout"`
}

// Log configures the log file
type Log struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
	File    string `toml:"file"`
	Debug   bool   `toml:"debug"`
}

// Audio configures notification tones
type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Name:   defaultName(),
		FPS:    30,
		DBPath: "termchat.db",
		Network: Network{
			ListenHost:  "0.0.0.0",
			Port:        8080,
			MaxDatagram: 65507,
			SendTimeout: 2 * time.Second,
			QueueSize:   256,
			Listen:      true,
		},
		Terminal: Terminal{
			Driver:        "ansi",
			Color:         "auto",
			EscapeTimeout: 100 * time.Millisecond,
		},
		Log: Log{
			Enabled: true,
			Dir:     "logs",
			File:    "termchat.log",
		},
		Audio: Audio{
			Enabled: true,
			Volume:  0.5,
		},
		Keys: DefaultKeys(),
	}
}

func defaultName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "anonymous"
}

// Load reads path over the defaults; a missing file yields the defaults
// The PORT environment variable overrides network.port
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	// Bindings absent from the file keep their defaults
	for action, key := range DefaultKeys() {
		if _, ok := cfg.Keys[action]; !ok {
			if cfg.Keys == nil {
				cfg.Keys = make(map[string]string)
			}
			cfg.Keys[action] = key
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("%w: PORT=%q is not a number", ErrInvalid, port)
		}
		cfg.Network.Port = p
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory
func Save(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Validate rejects values the client cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, fmt.Errorf("%w: name is empty", ErrInvalid))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS))
	}
	if c.Network.Port < 1 || c.Network.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: network.port %d outside 1..65535", ErrInvalid, c.Network.Port))
	}
	if c.Network.MaxDatagram <= 0 || c.Network.MaxDatagram > 65507 {
		errs = append(errs, fmt.Errorf("%w: network.max_datagram %d outside 1..65507", ErrInvalid, c.Network.MaxDatagram))
	}
	if _, err := terminal.ParseKind(c.Terminal.Driver); err != nil {
		errs = append(errs, fmt.Errorf("%w: terminal.driver: %v", ErrInvalid, err))
	}
	if _, ok := terminal.ParseColorMode(c.Terminal.Color); !ok {
		errs = append(errs, fmt.Errorf("%w: unknown terminal.color %q", ErrInvalid, c.Terminal.Color))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("%w: audio.volume %v outside 0..1", ErrInvalid, c.Audio.Volume))
	}
	if err := c.validateKeys(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LogPath returns the log file location
func (c *Config) LogPath() string {
	return filepath.Join(c.Log.Dir, c.Log.File)
}
