package kbpanel

import (
	"context"
	"fmt"
	"go.uber.org/zap"
	"strings"
	"time"
)

type Config struct {
	Source      LayoutSource
	Indicator   Indicator
	Settings    Settings
	History     History
	Autostart   Autostarter
	Describer   Describer
	Notifier    ChangeNotifier
	ExecTimeout time.Duration
	Log         *zap.SugaredLogger
}

// Panel keeps the tray in sync with the active layout. All of its state is
// owned by the goroutine running Run.
type Panel struct {
	adapter   *Adapter
	indicator Indicator
	settings  Settings
	history   History
	autostart Autostarter
	describer Describer
	notifier  ChangeNotifier
	timeout   time.Duration
	log       *zap.SugaredLogger

	layouts []string
	current string
	display Display
	quit    context.CancelFunc
}

func NewPanel(cfg Config) *Panel {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	timeout := cfg.ExecTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Panel{
		adapter:   NewAdapter(cfg.Source, log),
		indicator: cfg.Indicator,
		settings:  cfg.Settings,
		history:   cfg.History,
		autostart: cfg.Autostart,
		describer: cfg.Describer,
		notifier:  cfg.Notifier,
		timeout:   timeout,
		log:       log,
		current:   DefaultLayout,
		quit:      func() {},
	}
}

func (p *Panel) Current() string {
	return p.current
}

func (p *Panel) Layouts() []string {
	return p.layouts
}

// Run blocks until ctx is cancelled or the user picks Quit.
func (p *Panel) Run(ctx context.Context) error {
	ctx, p.quit = context.WithCancel(ctx)
	defer p.quit()

	p.start(ctx)

	interval := pollInterval(p.settings.UpdateInterval())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var hints <-chan struct{}
	if p.notifier != nil {
		hints = p.notifier.Changes(ctx)
	}

	clicks := p.indicator.Clicks()

	p.log.Infow("panel running", "interval", interval, "layouts", p.layouts)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.tick(ctx)
		case _, ok := <-hints:
			if !ok {
				hints = nil
				continue
			}
			p.tick(ctx)
		case id, ok := <-clicks:
			if !ok {
				return nil
			}
			p.handleClick(ctx, id)
		}
	}
}

func (p *Panel) start(ctx context.Context) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	p.layouts = p.adapter.ListLayouts(callCtx).Value
	cancel()

	if p.settings.RestoreLast() {
		p.restore(ctx)
	}

	if !p.tick(ctx) {
		p.refresh()
	}
}

func (p *Panel) restore(ctx context.Context) {
	if p.history == nil {
		return
	}

	last, err := p.history.LastSelected(ctx)
	if err != nil {
		p.log.Warnw("read last selected layout", "error", err)
		return
	}
	if last == "" {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if p.adapter.SetLayout(callCtx, last) {
		p.log.Infow("restored layout", "layout", last)
		p.current = last
		p.record(ctx, last, OriginRestore)
	}
}

func (p *Panel) tick(ctx context.Context) bool {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	res := p.adapter.CurrentLayout(callCtx)
	cancel()

	if res.Value == p.current {
		return false
	}

	p.log.Debugw("layout changed", "from", p.current, "to", res.Value, "fallback", res.Fallback)
	p.current = res.Value
	if !res.Fallback {
		p.record(ctx, res.Value, OriginPoll)
	}
	p.refresh()
	return true
}

func (p *Panel) selectLayout(ctx context.Context, code string) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	ok := p.adapter.SetLayout(callCtx, code)
	cancel()

	if !ok {
		return
	}

	p.current = code
	p.record(ctx, code, OriginMenu)
	p.refresh()
}

type Option string

const (
	OptionIconType  Option = "icon_type"
	OptionShowText  Option = "show_text"
	OptionAutostart Option = "autostart"
)

func (p *Panel) changeSetting(option Option, value string) error {
	var err error
	switch option {
	case OptionIconType:
		style := IconStyle(value)
		if !style.Valid() {
			return fmt.Errorf("invalid icon type %q", value)
		}
		err = p.settings.SetIconStyle(style)
	case OptionShowText:
		err = p.settings.SetShowText(value == "true")
	case OptionAutostart:
		enabled := value == "true"
		err = p.settings.SetAutostart(enabled)
		p.syncAutostart(enabled)
	default:
		return fmt.Errorf("unknown option %q", option)
	}

	if err != nil {
		p.log.Warnw("persist setting", "option", option, "value", value, "error", err)
	}

	p.refresh()
	return nil
}

func (p *Panel) syncAutostart(enabled bool) {
	if p.autostart == nil {
		return
	}

	var err error
	if enabled {
		err = p.autostart.Enable()
	} else {
		err = p.autostart.Disable()
	}
	if err != nil {
		p.log.Warnw("update autostart entry", "enabled", enabled, "error", err)
	}
}

func (p *Panel) handleClick(ctx context.Context, id string) {
	p.log.Debugw("menu click", "id", id)

	var err error
	switch {
	case strings.HasPrefix(id, idLayoutPrefix):
		p.selectLayout(ctx, layoutFromID(id))
	case strings.HasPrefix(id, idIconPrefix):
		err = p.changeSetting(OptionIconType, strings.TrimPrefix(id, idIconPrefix))
	case id == idShowText:
		err = p.changeSetting(OptionShowText, fmt.Sprint(!p.settings.ShowText()))
	case id == idAutostart:
		err = p.changeSetting(OptionAutostart, fmt.Sprint(!p.settings.Autostart()))
	case id == idQuit:
		p.log.Info("quit requested")
		p.quit()
	}

	if err != nil {
		p.log.Warnw("menu action", "id", id, "error", err)
	}
}

func (p *Panel) record(ctx context.Context, code string, origin Origin) {
	if p.history == nil {
		return
	}

	err := p.history.Record(ctx, Switch{Layout: code, Origin: origin, At: time.Now()})
	if err != nil {
		p.log.Warnw("record layout switch", "layout", code, "error", err)
	}
}

func (p *Panel) refresh() {
	p.display = render(p.current, p.settings)

	p.indicator.SetIcon(p.display.Icon)
	p.indicator.SetLabel(p.display.Label)
	p.indicator.SetTooltip(p.display.Tooltip)
	p.indicator.SetMenu(buildMenu(p.current, p.layouts, p.settings, p.describer))
}

func pollInterval(seconds int) time.Duration {
	return time.Duration(min(max(seconds, 1), MaxUpdateInterval)) * time.Second
}
