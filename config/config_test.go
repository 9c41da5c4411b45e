package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/termchat/event"
	"github.com/lixenwraith/termchat/terminal"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FPS != 30 || cfg.Network.Port != 8080 || cfg.Terminal.Driver != "ansi" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "termchat.toml")
	data := `
name = "alice"
fps = 60

[network]
port = 9001
send_timeout = "500ms"

[terminal]
driver = "tcell"

[keys]
create_chat = "ctrl_c"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "alice" || cfg.FPS != 60 {
		t.Errorf("top level = %q/%d", cfg.Name, cfg.FPS)
	}
	if cfg.Network.Port != 9001 || cfg.Network.SendTimeout != 500*time.Millisecond {
		t.Errorf("network = %+v", cfg.Network)
	}
	// Unset fields in a present table keep defaults
	if cfg.Network.ListenHost != "0.0.0.0" {
		t.Errorf("listen host = %q", cfg.Network.ListenHost)
	}

	km, err := cfg.Keymap()
	if err != nil {
		t.Fatalf("keymap: %v", err)
	}
	if km.Key(ActionCreateChat) != event.Ctrl('c') {
		t.Errorf("create_chat = %v", km.Key(ActionCreateChat))
	}
	if km.Key(ActionCreateUser) != event.Ctrl('u') {
		t.Errorf("default binding lost: %v", km.Key(ActionCreateUser))
	}
}

func TestPortEnvironmentOverride(t *testing.T) {
	t.Setenv("PORT", "7000")
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Network.Port != 7000 {
		t.Errorf("port = %d, want 7000", cfg.Network.Port)
	}

	t.Setenv("PORT", "eighty")
	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); !errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(path, []byte("fps = = 3"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"port zero", func(c *Config) { c.Network.Port = 0 }},
		{"port too big", func(c *Config) { c.Network.Port = 70000 }},
		{"unknown driver", func(c *Config) { c.Terminal.Driver = "curses" }},
		{"unknown color", func(c *Config) { c.Terminal.Color = "16" }},
		{"volume", func(c *Config) { c.Audio.Volume = 2 }},
		{"empty name", func(c *Config) { c.Name = "" }},
		{"unknown key", func(c *Config) { c.Keys["next_chat"] = "hyper_x" }},
		{"quit key", func(c *Config) { c.Keys["next_chat"] = "ctrl_q" }},
		{"duplicate key", func(c *Config) { c.Keys["next_chat"] = "m" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestValidateTerminalMatchesDriver(t *testing.T) {
	for _, color := range []string{"", "auto", "256", "truecolor", "24bit", "TrueColor", "16", "mono"} {
		cfg := Default()
		cfg.Terminal.Color = color
		_, parsed := terminal.ParseColorMode(color)
		if valid := cfg.Validate() == nil; valid != parsed {
			t.Errorf("color %q: Validate ok = %v, ParseColorMode ok = %v", color, valid, parsed)
		}
	}
	for _, driver := range []string{"", "ansi", "tcell", "curses"} {
		cfg := Default()
		cfg.Terminal.Driver = driver
		_, err := terminal.ParseKind(driver)
		if valid := cfg.Validate() == nil; valid != (err == nil) {
			t.Errorf("driver %q: Validate ok = %v, ParseKind err = %v", driver, valid, err)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "sub", "termchat.toml")
	cfg := Default()
	cfg.Name = "bob"
	cfg.Network.Port = 9100
	cfg.Audio.Enabled = false

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "bob" || got.Network.Port != 9100 || got.Audio.Enabled {
		t.Errorf("round trip = %+v", got)
	}
	if got.Network.SendTimeout != cfg.Network.SendTimeout {
		t.Errorf("duration = %v", got.Network.SendTimeout)
	}
}
