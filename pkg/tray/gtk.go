package tray

import (
	"codeberg.org/miketth/kbpanel/pkg/kbpanel"
	"github.com/getlantern/systray"
	"go.uber.org/zap"
	"sync"
)

// gtkTray keeps one menu for the whole session and mutates it in place;
// libappindicator has no way to drop items.
type gtkTray struct {
	title  string
	log    *zap.SugaredLogger
	clicks chan string

	mu   sync.Mutex
	menu *menuTree
}

func newGTKTray(title string, log *zap.SugaredLogger) *gtkTray {
	return &gtkTray{
		title:  title,
		log:    log,
		clicks: make(chan string, 8),
	}
}

func (t *gtkTray) Run(onReady func()) {
	systray.Run(func() {
		systray.SetTooltip(t.title)
		systray.SetIcon(KeyboardPNG())
		onReady()
	}, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.menu != nil {
			t.menu.close()
		}
	})
}

func (t *gtkTray) Quit() {
	systray.Quit()
}

func (t *gtkTray) Clicks() <-chan string {
	return t.clicks
}

func (t *gtkTray) SetIcon(icon kbpanel.Icon) {
	if icon == kbpanel.KeyboardIcon {
		systray.SetIcon(KeyboardPNG())
		return
	}
	systray.SetIcon(BlankPNG())
}

// SetLabel ends up as the appindicator label next to the icon.
func (t *gtkTray) SetLabel(label string) {
	systray.SetTitle(label)
}

func (t *gtkTray) SetTooltip(tooltip string) {
	systray.SetTooltip(tooltip)
}

func (t *gtkTray) SetMenu(items []kbpanel.MenuItem) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.menu == nil {
		t.menu = newMenuTree(gtkRootAdder, systray.AddSeparator, t.clicks)
		t.menu.build(items)
		return
	}

	if missing := t.menu.update(items); len(missing) > 0 {
		t.log.Debugw("appending new menu entries", "count", len(missing))
		t.menu.build(missing)
	}
}

func gtkRootAdder(title, tooltip string, checkable, checked bool) *node {
	if checkable {
		return gtkNode(systray.AddMenuItemCheckbox(title, tooltip, checked))
	}
	return gtkNode(systray.AddMenuItem(title, tooltip))
}

func gtkNode(item *systray.MenuItem) *node {
	return &node{
		item:    item,
		clicked: item.ClickedCh,
		add: func(title, tooltip string, checkable, checked bool) *node {
			if checkable {
				return gtkNode(item.AddSubMenuItemCheckbox(title, tooltip, checked))
			}
			return gtkNode(item.AddSubMenuItem(title, tooltip))
		},
	}
}
