package hyprland

import (
	"bytes"
	"codeberg.org/miketth/kbpanel/pkg/kbpanel"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

type Registry interface {
	GetLayoutAndVariantFromPrettyName(prettyName string) (string, string)
}

type Hyprctl struct {
	Path     string
	Registry Registry
}

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDeviceNotFound  = errors.New("device not found")
	ErrNoKeyboard      = errors.New("no keyboard reported")
	ErrUnknownLayout   = errors.New("layout not configured for keyboard")
)

var errorMapper = []struct {
	re  *regexp.Regexp
	err error
}{
	{regexp.MustCompile(`^ok$`), nil},
	{regexp.MustCompile(`layout idx out of range`), ErrIndexOutOfRange},
	{regexp.MustCompile(`device not found`), ErrDeviceNotFound},
}

func (h Hyprctl) runCommand(ctx context.Context, args ...string) (string, error) {
	var stdout bytes.Buffer

	path := h.Path
	if path == "" {
		path = "hyprctl"
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stdout

	err := cmd.Run()
	outStr := strings.TrimSpace(stdout.String())
	if err != nil {
		return "", fmt.Errorf("hyprctl: %w, stdout: %s", err, outStr)
	}

	return outStr, nil
}

func (h Hyprctl) devices(ctx context.Context) (devices, error) {
	outStr, err := h.runCommand(ctx, "devices", "-j")
	if err != nil {
		return devices{}, err
	}

	var devs devices
	if err := json.Unmarshal([]byte(outStr), &devs); err != nil {
		return devices{}, fmt.Errorf("unmarshal: %w, (hyprctl: %s)", err, outStr)
	}

	return devs, nil
}

func (h Hyprctl) Query(ctx context.Context) (kbpanel.State, error) {
	devs, err := h.devices(ctx)
	if err != nil {
		return kbpanel.State{}, err
	}

	kb, ok := devs.mainKeyboard()
	if !ok {
		return kbpanel.State{}, ErrNoKeyboard
	}

	layouts := kb.layouts()
	if len(layouts) == 0 {
		return kbpanel.State{}, fmt.Errorf("keyboard %q: %w", kb.Name, kbpanel.ErrNoLayouts)
	}

	return kbpanel.State{Layouts: layouts, Active: h.activeCode(kb.ActiveKeymap, layouts)}, nil
}

// activeCode maps hyprland's pretty keymap name back to a layout code.
func (h Hyprctl) activeCode(keymap string, layouts []string) string {
	if h.Registry != nil {
		code, _ := h.Registry.GetLayoutAndVariantFromPrettyName(keymap)
		if slices.Contains(layouts, code) {
			return code
		}
	}

	for _, code := range layouts {
		if kbpanel.DisplayName(code) == keymap {
			return code
		}
	}

	return layouts[0]
}

func (h Hyprctl) Apply(ctx context.Context, code string) error {
	devs, err := h.devices(ctx)
	if err != nil {
		return err
	}

	kb, ok := devs.mainKeyboard()
	if !ok {
		return ErrNoKeyboard
	}

	idx := slices.Index(kb.layouts(), code)
	if idx < 0 {
		return fmt.Errorf("%q on %q: %w", code, kb.Name, ErrUnknownLayout)
	}

	return h.SwitchToLayout(ctx, kb.Name, idx)
}

func (h Hyprctl) SwitchToLayout(ctx context.Context, keyboard string, idx int) error {
	outStr, err := h.runCommand(ctx, "switchxkblayout", "--", keyboard, strconv.Itoa(idx))
	if err != nil {
		return err
	}

	for _, m := range errorMapper {
		if m.re.MatchString(outStr) {
			return m.err
		}
	}

	return fmt.Errorf("unknown hyprctl error: %s", outStr)
}
