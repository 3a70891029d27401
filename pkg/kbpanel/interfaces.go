package kbpanel

import (
	"context"
	"time"
)

type State struct {
	Layouts []string
	Active  string
}

// LayoutSource is the external tool that knows the real layout state.
type LayoutSource interface {
	Query(ctx context.Context) (State, error)
	Apply(ctx context.Context, code string) error
}

// ChangeNotifier delivers hints that the layout may have changed out-of-band.
type ChangeNotifier interface {
	Changes(ctx context.Context) <-chan struct{}
}

type Describer interface {
	Describe(code string) string
}

type IconStyle string

const (
	IconNone     IconStyle = "none"
	IconFlag     IconStyle = "flag"
	IconKeyboard IconStyle = "keyboard"
)

func (s IconStyle) Valid() bool {
	switch s {
	case IconNone, IconFlag, IconKeyboard:
		return true
	}
	return false
}

type TextPosition string

const (
	TextLeft  TextPosition = "left"
	TextRight TextPosition = "right"
)

type Settings interface {
	IconStyle() IconStyle
	SetIconStyle(style IconStyle) error
	ShowText() bool
	SetShowText(show bool) error
	TextPosition() TextPosition
	Autostart() bool
	SetAutostart(enabled bool) error
	RestoreLast() bool
	UpdateInterval() int
}

// MaxUpdateInterval caps the poll interval, in seconds.
const MaxUpdateInterval = 3600

type Icon int

const (
	NoIcon Icon = iota
	KeyboardIcon
)

type MenuItem struct {
	ID        string
	Title     string
	Tooltip   string
	Disabled  bool
	Checkable bool
	Checked   bool
	Separator bool
	Children  []MenuItem
}

type Indicator interface {
	SetIcon(icon Icon)
	SetLabel(label string)
	SetTooltip(tooltip string)
	SetMenu(items []MenuItem)
	Clicks() <-chan string
}

type Origin string

const (
	OriginPoll    Origin = "poll"
	OriginMenu    Origin = "menu"
	OriginRestore Origin = "restore"
)

type Switch struct {
	Layout string
	Origin Origin
	At     time.Time
}

type History interface {
	Record(ctx context.Context, sw Switch) error
	LastSelected(ctx context.Context) (string, error)
}

type Autostarter interface {
	Enable() error
	Disable() error
}
