// Package autostart manages the XDG autostart entry that launches the panel
// on login.
package autostart

import (
	"fmt"
	"github.com/adrg/xdg"
	"os"
	"path/filepath"
	"text/template"
)

const desktopEntry = `[Desktop Entry]
Type=Application
Name=Keyboard Panel
Comment=Shows and switches the keyboard layout
Exec={{.ExecutablePath}}
Icon=input-keyboard
Terminal=false
X-GNOME-Autostart-enabled=true
`

var entryTemplate = template.Must(template.New("desktop").Parse(desktopEntry))

type Entry struct {
	Dir            string
	Name           string
	ExecutablePath string
}

// New returns the entry under $XDG_CONFIG_HOME/autostart for the running
// executable.
func New(name string) (*Entry, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("get executable path: %w", err)
	}

	return &Entry{
		Dir:            filepath.Join(xdg.ConfigHome, "autostart"),
		Name:           name,
		ExecutablePath: execPath,
	}, nil
}

func (e *Entry) Path() string {
	return filepath.Join(e.Dir, e.Name+".desktop")
}

func (e *Entry) Enable() error {
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}

	f, err := os.Create(e.Path())
	if err != nil {
		return fmt.Errorf("create desktop entry: %w", err)
	}
	defer f.Close()

	if err := entryTemplate.Execute(f, e); err != nil {
		return fmt.Errorf("write desktop entry: %w", err)
	}

	return nil
}

func (e *Entry) Disable() error {
	if err := os.Remove(e.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove desktop entry: %w", err)
	}
	return nil
}

func (e *Entry) IsEnabled() bool {
	_, err := os.Stat(e.Path())
	return err == nil
}

// Tidy removes an entry left behind once autostart is switched off. It never
// creates one; that only happens when the user turns the option on.
func (e *Entry) Tidy(enabled bool) error {
	if enabled || !e.IsEnabled() {
		return nil
	}
	return e.Disable()
}
