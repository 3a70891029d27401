package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/miketth/kbpanel/pkg/history/memory"
	"codeberg.org/miketth/kbpanel/pkg/history/sqlite"
	"codeberg.org/miketth/kbpanel/pkg/hyprland"
	"codeberg.org/miketth/kbpanel/pkg/xkb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "auto", opts.tool)
	assert.Equal(t, "auto", opts.backend)
	assert.Equal(t, 5*time.Second, opts.execTimeout)
	assert.Equal(t, "/usr/share/X11/xkb/rules/evdev.xml", opts.evdevXMLPath)
	assert.False(t, opts.debug)
}

func TestParseFlags_Help(t *testing.T) {
	for _, arg := range []string{"--help", "-help", "-h"} {
		var out bytes.Buffer
		_, err := parseFlags([]string{arg}, &out)
		assert.ErrorIs(t, err, flag.ErrHelp, arg)
		assert.Contains(t, out.String(), "Usage: kbpanel", arg)
	}
}

func TestParseFlags_Rejects(t *testing.T) {
	_, err := parseFlags([]string{"-bogus"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = parseFlags([]string{"extra"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_HelpBeforeSessionCheck(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	err := run([]string{"--help"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestRun_NoGraphicsSession(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	err := run(nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNoGraphicsSession)
}

func TestGraphicsSession(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "wayland-1")
	assert.True(t, graphicsSession())

	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("DISPLAY", ":0")
	assert.True(t, graphicsSession())
}

func TestNewLayoutSource(t *testing.T) {
	log := zap.NewNop().Sugar()
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")

	source, notifier, err := newLayoutSource("auto", nil, log)
	require.NoError(t, err)
	assert.IsType(t, xkb.Setxkbmap{}, source)
	assert.Nil(t, notifier)

	source, notifier, err = newLayoutSource("hyprctl", nil, log)
	require.NoError(t, err)
	assert.IsType(t, hyprland.Hyprctl{}, source)
	assert.Nil(t, notifier, "no event socket without a running instance")

	_, _, err = newLayoutSource("xkb-switch", nil, log)
	assert.Error(t, err)
}

func TestOpenHistory(t *testing.T) {
	log := zap.NewNop().Sugar()

	h := openHistory(filepath.Join(t.TempDir(), "history.db"), log)
	require.IsType(t, &sqlite.HistoryStore{}, h)
	h.(*sqlite.HistoryStore).Close()

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	h = openHistory(filepath.Join(blocker, "history.db"), log)
	assert.IsType(t, &memory.HistoryStore{}, h)
}
