package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/lixenwraith/termchat/app"
	"github.com/lixenwraith/termchat/audio"
	"github.com/lixenwraith/termchat/config"
	"github.com/lixenwraith/termchat/engine"
	"github.com/lixenwraith/termchat/network"
	"github.com/lixenwraith/termchat/service"
	"github.com/lixenwraith/termchat/store"
	"github.com/lixenwraith/termchat/terminal"
)

var (
	configFlag = flag.String("config", config.DefaultPath, "Path to the TOML config file")
	nameFlag   = flag.String("name", "", "User name announced to peers")
	portFlag   = flag.Int("port", 0, "UDP port to listen on (overrides PORT)")
	dbFlag     = flag.String("db", "", "SQLite database path")
	fpsFlag    = flag.Int("fps", 0, "Frames per second")
	driverFlag = flag.String("driver", "", "Terminal driver: ansi, tcell")
	colorFlag  = flag.String("color", "", "Color mode: auto, truecolor, 256")
	debugFlag  = flag.Bool("debug", false, "Verbose logging with source locations")
	muteFlag   = flag.Bool("mute", false, "Start with notification tones muted")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "termchat: %v\n", err)
		os.Exit(2)
	}

	logFile, err := setupLogging(cfg.Log.Enabled || cfg.Log.Debug, cfg.Log.Debug, cfg.LogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "termchat: logging disabled: %v\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		log.Printf("exit: %v", err)
		fmt.Fprintf(os.Stderr, "termchat: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the file then applies explicitly set flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			cfg.Name = *nameFlag
		case "port":
			cfg.Network.Port = *portFlag
		case "db":
			cfg.DBPath = *dbFlag
		case "fps":
			cfg.FPS = *fpsFlag
		case "driver":
			cfg.Terminal.Driver = *driverFlag
		case "color":
			cfg.Terminal.Color = *colorFlag
		case "debug":
			cfg.Log.Debug = *debugFlag
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*store.Conn, error) {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	schema := store.Schema
	if cfg.Schema != "" {
		data, err := os.ReadFile(cfg.Schema)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("read schema: %w", err)
		}
		schema = string(data)
	}
	if err := db.ApplySchema(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func run(cfg *config.Config) error {
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Printf("store: opened %s", cfg.DBPath)

	keys, err := cfg.Keymap()
	if err != nil {
		return err
	}

	kind, err := terminal.ParseKind(cfg.Terminal.Driver)
	if err != nil {
		return err
	}
	mode, ok := terminal.ParseColorMode(cfg.Terminal.Color)
	if !ok {
		return fmt.Errorf("unknown color mode %q", cfg.Terminal.Color)
	}
	driver, err := terminal.New(kind, mode)
	if err != nil {
		return err
	}
	if err := driver.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	// Normal exit terminal cleanup
	defer driver.Fini()

	// Restore the terminal before the stack trace so it stays readable
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			log.Printf("panic: %v\n%s", r, debug.Stack())
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMCHAT CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	netCfg := &network.Config{
		ListenHost:  cfg.Network.ListenHost,
		Port:        cfg.Network.Port,
		MaxDatagram: cfg.Network.MaxDatagram,
		ReadTimeout: network.DefaultConfig().ReadTimeout,
		SendTimeout: cfg.Network.SendTimeout,
		QueueSize:   cfg.Network.QueueSize,
	}
	audioCfg := audio.DefaultConfig()
	audioCfg.Enabled = cfg.Audio.Enabled
	audioCfg.Volume = cfg.Audio.Volume

	hub := service.NewHub()
	if err := hub.Register(network.NewService(), netCfg, !cfg.Network.Listen); err != nil {
		return err
	}
	if err := hub.Register(audio.NewNotifier(), audioCfg, *muteFlag); err != nil {
		return err
	}
	if err := hub.InitAll(); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer hub.StopAll()

	netSvc := service.MustGet[*network.Service](hub, "network")
	notifier := service.MustGet[*audio.Notifier](hub, "audio")

	e := engine.New(driver, engine.Config{
		FPS:           cfg.FPS,
		EscapeTimeout: cfg.Terminal.EscapeTimeout,
	})

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigs)
	go func() {
		if _, ok := <-sigs; ok {
			e.Finalize()
		}
	}()

	state := app.NewState(cfg.Name, cfg.Network.Port, db, netSvc.Sender())
	root := app.NewRoot(e, state, keys, app.Peers{
		Inbound: netSvc.Inbound(),
		Outbox:  netSvc.Sender().Outbox(),
		Player:  notifier,
	})
	e.SwitchScene(root)

	log.Printf("termchat: %s listening on %s", cfg.Name, netCfg.ListenAddress())
	return e.Run()
}
