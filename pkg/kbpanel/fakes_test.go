package kbpanel

import (
	"context"
	"errors"
	"sync"
)

var errTool = errors.New("tool failed")

type fakeSource struct {
	state    State
	queryErr error
	applyErr error
	applied  []string
}

func (f *fakeSource) Query(context.Context) (State, error) {
	if f.queryErr != nil {
		return State{}, f.queryErr
	}
	return f.state, nil
}

func (f *fakeSource) Apply(_ context.Context, code string) error {
	f.applied = append(f.applied, code)
	if f.applyErr != nil {
		return f.applyErr
	}
	f.state.Active = code
	return nil
}

type fakeIndicator struct {
	mu      sync.Mutex
	icon    Icon
	label   string
	tooltip string
	menu    []MenuItem
	menus   int
	clicks  chan string
}

func newFakeIndicator() *fakeIndicator {
	return &fakeIndicator{clicks: make(chan string)}
}

func (f *fakeIndicator) SetIcon(icon Icon) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.icon = icon
}

func (f *fakeIndicator) SetLabel(label string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.label = label
}

func (f *fakeIndicator) SetTooltip(tooltip string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tooltip = tooltip
}

func (f *fakeIndicator) SetMenu(items []MenuItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.menu = items
	f.menus++
}

func (f *fakeIndicator) Clicks() <-chan string {
	return f.clicks
}

func (f *fakeIndicator) Label() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.label
}

type fakeSettings struct {
	style     IconStyle
	showText  bool
	pos       TextPosition
	autostart bool
	restore   bool
	interval  int
	writeErr  error
}

func defaultFakeSettings() *fakeSettings {
	return &fakeSettings{style: IconKeyboard, showText: true, pos: TextRight, autostart: true, interval: 1}
}

func (f *fakeSettings) IconStyle() IconStyle { return f.style }

func (f *fakeSettings) SetIconStyle(style IconStyle) error {
	f.style = style
	return f.writeErr
}

func (f *fakeSettings) ShowText() bool { return f.showText }

func (f *fakeSettings) SetShowText(show bool) error {
	f.showText = show
	return f.writeErr
}

func (f *fakeSettings) TextPosition() TextPosition { return f.pos }

func (f *fakeSettings) Autostart() bool { return f.autostart }

func (f *fakeSettings) SetAutostart(enabled bool) error {
	f.autostart = enabled
	return f.writeErr
}

func (f *fakeSettings) RestoreLast() bool { return f.restore }

func (f *fakeSettings) UpdateInterval() int { return f.interval }

type fakeHistory struct {
	switches []Switch
	last     string
}

func (f *fakeHistory) Record(_ context.Context, sw Switch) error {
	f.switches = append(f.switches, sw)
	return nil
}

func (f *fakeHistory) LastSelected(context.Context) (string, error) {
	return f.last, nil
}

type fakeAutostart struct {
	enabled *bool
}

func (f *fakeAutostart) Enable() error {
	v := true
	f.enabled = &v
	return nil
}

func (f *fakeAutostart) Disable() error {
	v := false
	f.enabled = &v
	return nil
}
