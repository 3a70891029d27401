package tray

import (
	"codeberg.org/miketth/kbpanel/pkg/kbpanel"
	"fyne.io/systray"
	"go.uber.org/zap"
	"sync"
)

// sniTray rebuilds its menu from scratch on every change. StatusNotifierItem
// hosts rarely draw a label, so text is rendered into the icon instead.
type sniTray struct {
	title  string
	log    *zap.SugaredLogger
	clicks chan string

	mu    sync.Mutex
	menu  *menuTree
	icon  kbpanel.Icon
	label string
}

func newSNITray(title string, log *zap.SugaredLogger) *sniTray {
	return &sniTray{
		title:  title,
		log:    log,
		clicks: make(chan string, 8),
		icon:   kbpanel.KeyboardIcon,
	}
}

func (t *sniTray) Run(onReady func()) {
	systray.Run(func() {
		systray.SetTitle(t.title)
		systray.SetTooltip(t.title)
		systray.SetIcon(KeyboardPNG())
		onReady()
	}, func() {
		t.mu.Lock()
		if t.menu != nil {
			t.menu.close()
		}
		t.mu.Unlock()
	})
}

func (t *sniTray) Quit() {
	systray.Quit()
}

func (t *sniTray) Clicks() <-chan string {
	return t.clicks
}

func (t *sniTray) SetIcon(icon kbpanel.Icon) {
	t.mu.Lock()
	t.icon = icon
	t.mu.Unlock()
	t.redraw()
}

func (t *sniTray) SetLabel(label string) {
	t.mu.Lock()
	t.label = label
	t.mu.Unlock()
	systray.SetTitle(label)
	t.redraw()
}

func (t *sniTray) SetTooltip(tooltip string) {
	systray.SetTooltip(tooltip)
}

func (t *sniTray) redraw() {
	t.mu.Lock()
	icon, label := t.icon, t.label
	t.mu.Unlock()

	systray.SetIcon(iconBytes(icon, label))
}

func (t *sniTray) SetMenu(items []kbpanel.MenuItem) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.menu != nil {
		t.menu.close()
	}
	systray.ResetMenu()

	t.menu = newMenuTree(sniRootAdder, systray.AddSeparator, t.clicks)
	t.menu.build(items)
}

func sniRootAdder(title, tooltip string, checkable, checked bool) *node {
	if checkable {
		return sniNode(systray.AddMenuItemCheckbox(title, tooltip, checked))
	}
	return sniNode(systray.AddMenuItem(title, tooltip))
}

func sniNode(item *systray.MenuItem) *node {
	return &node{
		item:    item,
		clicked: item.ClickedCh,
		add: func(title, tooltip string, checkable, checked bool) *node {
			if checkable {
				return sniNode(item.AddSubMenuItemCheckbox(title, tooltip, checked))
			}
			return sniNode(item.AddSubMenuItem(title, tooltip))
		},
	}
}
