package tray

import (
	"codeberg.org/miketth/kbpanel/pkg/kbpanel"
	"strconv"
)

// menuItem is the method set both systray libraries share.
type menuItem interface {
	SetTitle(title string)
	SetTooltip(tooltip string)
	Check()
	Uncheck()
	Enable()
	Disable()
}

type node struct {
	item    menuItem
	clicked <-chan struct{}
	add     adder
}

type adder func(title, tooltip string, checkable, checked bool) *node

type menuTree struct {
	nodes   map[string]*node
	clicks  chan<- string
	done    chan struct{}
	addSep  func()
	addRoot adder
}

func newMenuTree(addRoot adder, addSep func(), clicks chan<- string) *menuTree {
	return &menuTree{
		nodes:   make(map[string]*node),
		clicks:  clicks,
		done:    make(chan struct{}),
		addSep:  addSep,
		addRoot: addRoot,
	}
}

func (t *menuTree) build(items []kbpanel.MenuItem) {
	t.buildLevel(items, t.addRoot, true)
}

func (t *menuTree) buildLevel(items []kbpanel.MenuItem, add adder, top bool) {
	for _, it := range items {
		if it.Separator {
			// separators only exist at the top level of our menu
			if top {
				t.addSep()
			}
			continue
		}

		n := add(it.Title, it.Tooltip, it.Checkable, it.Checked)
		if it.Disabled {
			n.item.Disable()
		}
		t.nodes[key(it)] = n

		if len(it.Children) > 0 {
			t.buildLevel(it.Children, n.add, false)
			continue
		}
		if it.ID != "" {
			go t.forward(it.ID, n.clicked)
		}
	}
}

// update applies the new state to existing entries and reports the items
// it could not find.
func (t *menuTree) update(items []kbpanel.MenuItem) []kbpanel.MenuItem {
	var missing []kbpanel.MenuItem
	for _, it := range items {
		if it.Separator {
			continue
		}

		n, ok := t.nodes[key(it)]
		if !ok {
			missing = append(missing, it)
			continue
		}

		n.item.SetTitle(it.Title)
		n.item.SetTooltip(it.Tooltip)
		if it.Checkable {
			if it.Checked {
				n.item.Check()
			} else {
				n.item.Uncheck()
			}
		}
		if it.Disabled {
			n.item.Disable()
		} else {
			n.item.Enable()
		}

		missing = append(missing, t.update(it.Children)...)
	}
	return missing
}

func (t *menuTree) forward(id string, clicked <-chan struct{}) {
	for {
		select {
		case <-clicked:
			select {
			case t.clicks <- id:
			case <-t.done:
				return
			}
		case <-t.done:
			return
		}
	}
}

func (t *menuTree) close() {
	close(t.done)
}

func key(it kbpanel.MenuItem) string {
	if it.ID != "" {
		return it.ID
	}
	return "title:" + it.Title + ":" + strconv.Itoa(len(it.Children))
}
