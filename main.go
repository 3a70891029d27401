package main

import (
	"codeberg.org/miketth/kbpanel/pkg/autostart"
	"codeberg.org/miketth/kbpanel/pkg/history/memory"
	"codeberg.org/miketth/kbpanel/pkg/history/sqlite"
	"codeberg.org/miketth/kbpanel/pkg/hyprland"
	"codeberg.org/miketth/kbpanel/pkg/kbpanel"
	"codeberg.org/miketth/kbpanel/pkg/settings"
	"codeberg.org/miketth/kbpanel/pkg/tray"
	"codeberg.org/miketth/kbpanel/pkg/xkb"
	"codeberg.org/miketth/kbpanel/pkg/xkblayouts"
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/adrg/xdg"
	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const appName = "keyboard-panel"

var ErrNoGraphicsSession = errors.New("no graphics environment found (DISPLAY and WAYLAND_DISPLAY not set)")

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stdout)

	err := run(os.Args[1:], os.Stdout)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return
	case err != nil:
		log.Fatalf("error: %+v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	if !graphicsSession() {
		return ErrNoGraphicsSession
	}

	log, err := newLogger(opts.debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := opts.configPath
	if configPath == "" {
		configPath, err = xdg.ConfigFile(appName + "/config.toml")
		if err != nil {
			return fmt.Errorf("get config path: %w", err)
		}
	}
	store := settings.Open(configPath, log)

	registry, err := xkblayouts.ParseLayouts(opts.evdevXMLPath)
	if err != nil {
		log.Warnw("layout descriptions unavailable", "path", opts.evdevXMLPath, "error", err)
	}

	source, notifier, err := newLayoutSource(opts.tool, registry, log)
	if err != nil {
		return fmt.Errorf("layout tool: %w", err)
	}
	if closer, ok := notifier.(io.Closer); ok {
		defer closer.Close()
	}

	history := openHistory(opts.historyPath, log)
	if closer, ok := history.(io.Closer); ok {
		defer closer.Close()
	}

	entry, err := autostart.New(appName)
	if err != nil {
		return fmt.Errorf("autostart entry: %w", err)
	}
	if err := entry.Tidy(store.Autostart()); err != nil {
		log.Warnw("remove stale autostart entry", "path", entry.Path(), "error", err)
	}

	backend, err := tray.Resolve(opts.backend, tray.ProbeSessionBus, log)
	if err != nil {
		return fmt.Errorf("resolve tray backend: %w", err)
	}
	indicator, err := tray.New(backend, "Keyboard layout", log)
	if err != nil {
		return fmt.Errorf("create tray: %w", err)
	}

	panel := kbpanel.NewPanel(kbpanel.Config{
		Source:      source,
		Indicator:   indicator,
		Settings:    store,
		History:     history,
		Autostart:   entry,
		Describer:   registry,
		Notifier:    notifier,
		ExecTimeout: opts.execTimeout,
		Log:         log,
	})

	log.Infow("started keyboard panel", "backend", backend, "tool", opts.tool, "config", configPath)

	errChan := make(chan error, 2)
	var wg sync.WaitGroup

	indicator.Run(func() {
		wg.Add(2)

		go func() {
			defer wg.Done()
			defer indicator.Quit()
			err := panel.Run(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				errChan <- fmt.Errorf("panel: %w", err)
			}
		}()

		go func() {
			defer wg.Done()
			err := systemdNotifyLoop(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				errChan <- fmt.Errorf("systemd notify: %w", err)
			}
		}()
	})

	// the tray loop can also end on its own
	stop()
	wg.Wait()
	close(errChan)

	log.Info("shutting down")

	return <-errChan
}

type options struct {
	configPath   string
	tool         string
	backend      string
	evdevXMLPath string
	historyPath  string
	execTimeout  time.Duration
	debug        bool
}

const usageText = `Usage: %s [options]

Keyboard layout indicator for the system tray. Shows the current layout and
switches layouts from the context menu. Settings live in
$XDG_CONFIG_HOME/%s/config.toml unless -config is given.

Options:

`

func parseFlags(args []string, out io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("kbpanel", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, usageText, fs.Name(), appName)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "settings `file`")
	fs.StringVar(&opts.tool, "tool", "auto", "layout tool: auto, setxkbmap or hyprctl")
	fs.StringVar(&opts.backend, "backend", "auto", "tray backend: auto, sni or gtk")
	fs.StringVar(&opts.evdevXMLPath, "evdev-xml-path", xkblayouts.DefaultRegistryPath, "path to evdev.xml")
	fs.StringVar(&opts.historyPath, "history-db", "", "layout switch history `database` (default in XDG data dir)")
	fs.DurationVar(&opts.execTimeout, "exec-timeout", 5*time.Second, "timeout for each layout tool invocation")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return opts, nil
}

func graphicsSession() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func newLayoutSource(tool string, registry *xkblayouts.XkbConfigRegistry, log *zap.SugaredLogger) (kbpanel.LayoutSource, kbpanel.ChangeNotifier, error) {
	if tool == "auto" {
		tool = "setxkbmap"
		if hyprland.Running() {
			tool = "hyprctl"
		}
	}

	switch tool {
	case "setxkbmap":
		return xkb.Setxkbmap{}, nil, nil
	case "hyprctl":
		source := hyprland.Hyprctl{Registry: registry}
		client, err := hyprland.Connect(log)
		if err != nil {
			log.Warnw("hyprland events unavailable, polling only", "error", err)
			return source, nil, nil
		}
		return source, client, nil
	}

	return nil, nil, fmt.Errorf("unknown layout tool %q", tool)
}

// openHistory falls back to an in-memory history when the database cannot
// be opened; the panel works the same, it just forgets on exit.
func openHistory(path string, log *zap.SugaredLogger) kbpanel.History {
	if path == "" {
		var err error
		path, err = xdg.DataFile(appName + "/history.db")
		if err != nil {
			log.Warnw("history path unavailable", "error", err)
			return memory.NewHistoryStore()
		}
	}

	store, err := sqlite.NewHistoryStore(path, log)
	if err != nil {
		log.Warnw("history database unavailable", "path", path, "error", err)
		return memory.NewHistoryStore()
	}

	return store
}

func systemdNotifyLoop(ctx context.Context) error {
	// tell systemd that we're ready
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	_, _ = daemon.SdNotify(false, "STATUS=Watching the keyboard layout")

	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	// if watchdog is not enabled, we don't need to notify it
	if t == 0 {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
			return ctx.Err()

		case <-time.After(t / 2):
			_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			if err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	loggerConfig.OutputPaths = []string{"stdout"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
