// Package tray puts the panel into the desktop's notification area. Two
// backends exist and one is picked at startup: a StatusNotifierItem over
// D-Bus, and a GTK libappindicator fallback.
package tray

import (
	"codeberg.org/miketth/kbpanel/pkg/kbpanel"
	"fmt"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

type Backend int

const (
	// SNI talks the StatusNotifierItem protocol directly over the session bus.
	SNI Backend = iota + 1
	// GTK goes through libappindicator and its GTK status icon fallback.
	GTK
)

func (b Backend) String() string {
	switch b {
	case SNI:
		return "sni"
	case GTK:
		return "gtk"
	}
	return fmt.Sprintf("backend(%d)", int(b))
}

const watcherName = "org.kde.StatusNotifierWatcher"

// Tray is an indicator with its own UI loop.
type Tray interface {
	kbpanel.Indicator
	// Run blocks on the UI loop; onReady is called once the icon exists.
	Run(onReady func())
	Quit()
}

// Prober reports whether a StatusNotifierItem host is listening.
type Prober func() (bool, error)

// Resolve turns the configured choice into a concrete backend. "auto" asks
// the prober once; any probe failure means GTK.
func Resolve(choice string, probe Prober, log *zap.SugaredLogger) (Backend, error) {
	switch choice {
	case "sni":
		return SNI, nil
	case "gtk":
		return GTK, nil
	case "auto", "":
	default:
		return 0, fmt.Errorf("unknown tray backend %q", choice)
	}

	ok, err := probe()
	if err != nil {
		log.Debugw("status notifier probe failed", "error", err)
		return GTK, nil
	}
	if ok {
		return SNI, nil
	}
	return GTK, nil
}

// ProbeSessionBus checks whether the StatusNotifierWatcher name is owned on
// the session bus.
func ProbeSessionBus() (bool, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return false, fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	var owned bool
	err = conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, watcherName).Store(&owned)
	if err != nil {
		return false, fmt.Errorf("name has owner call: %w", err)
	}

	return owned, nil
}

func New(backend Backend, title string, log *zap.SugaredLogger) (Tray, error) {
	switch backend {
	case SNI:
		return newSNITray(title, log), nil
	case GTK:
		return newGTKTray(title, log), nil
	}
	return nil, fmt.Errorf("unknown tray backend %v", backend)
}
