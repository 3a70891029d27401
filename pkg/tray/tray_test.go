package tray

import (
	"bytes"
	"errors"
	"image/png"
	"testing"
	"time"

	"codeberg.org/miketth/kbpanel/pkg/kbpanel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolve(t *testing.T) {
	log := zap.NewNop().Sugar()
	never := func() (bool, error) {
		t.Fatal("probe should not run")
		return false, nil
	}

	b, err := Resolve("sni", never, log)
	require.NoError(t, err)
	assert.Equal(t, SNI, b)

	b, err = Resolve("gtk", never, log)
	require.NoError(t, err)
	assert.Equal(t, GTK, b)

	b, err = Resolve("auto", func() (bool, error) { return true, nil }, log)
	require.NoError(t, err)
	assert.Equal(t, SNI, b)

	b, err = Resolve("", func() (bool, error) { return false, nil }, log)
	require.NoError(t, err)
	assert.Equal(t, GTK, b)

	b, err = Resolve("auto", func() (bool, error) { return false, errors.New("no bus") }, log)
	require.NoError(t, err)
	assert.Equal(t, GTK, b)

	_, err = Resolve("qt", never, log)
	assert.Error(t, err)
}

func TestBackendString(t *testing.T) {
	assert.Equal(t, "sni", SNI.String())
	assert.Equal(t, "gtk", GTK.String())
	assert.Equal(t, "backend(9)", Backend(9).String())
}

func TestIcons(t *testing.T) {
	for name, data := range map[string][]byte{
		"keyboard": KeyboardPNG(),
		"blank":    BlankPNG(),
	} {
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err, name)
		assert.Equal(t, iconSize, img.Bounds().Dx(), name)
		assert.Equal(t, iconSize, img.Bounds().Dy(), name)
	}

	img, err := png.Decode(bytes.NewReader(TextPNG("[RU] RU")))
	require.NoError(t, err)
	assert.Equal(t, iconSize, img.Bounds().Dy())
	assert.Greater(t, img.Bounds().Dx(), iconSize)
}

func TestIconBytes(t *testing.T) {
	assert.Equal(t, KeyboardPNG(), iconBytes(kbpanel.KeyboardIcon, ""))
	assert.Equal(t, BlankPNG(), iconBytes(kbpanel.NoIcon, ""))
	assert.Equal(t, TextPNG("RU"), iconBytes(kbpanel.KeyboardIcon, "RU"))
}

type fakeItem struct {
	title    string
	tooltip  string
	checked  bool
	disabled bool
	clicked  chan struct{}
	children []*fakeItem
}

func (f *fakeItem) SetTitle(title string)     { f.title = title }
func (f *fakeItem) SetTooltip(tooltip string) { f.tooltip = tooltip }
func (f *fakeItem) Check()                    { f.checked = true }
func (f *fakeItem) Uncheck()                  { f.checked = false }
func (f *fakeItem) Enable()                   { f.disabled = false }
func (f *fakeItem) Disable()                  { f.disabled = true }

type fakeMenu struct {
	roots      []*fakeItem
	separators int
}

func (m *fakeMenu) adder(parent *fakeItem) adder {
	return func(title, tooltip string, checkable, checked bool) *node {
		it := &fakeItem{title: title, tooltip: tooltip, checked: checked, clicked: make(chan struct{})}
		if parent == nil {
			m.roots = append(m.roots, it)
		} else {
			parent.children = append(parent.children, it)
		}
		return &node{item: it, clicked: it.clicked, add: m.adder(it)}
	}
}

func testItems(current string) []kbpanel.MenuItem {
	return []kbpanel.MenuItem{
		{ID: "current", Title: "Current: " + current, Disabled: true},
		{Separator: true},
		{ID: "layout:0:us", Title: "Switch to English (US)", Checkable: true, Checked: current == "US"},
		{ID: "settings", Title: "Settings", Children: []kbpanel.MenuItem{
			{ID: "show-text", Title: "Show text", Checkable: true, Checked: true},
		}},
	}
}

func TestMenuTree_DistinctIDsKeepOwnNodes(t *testing.T) {
	m := &fakeMenu{}
	tree := newMenuTree(m.adder(nil), func() {}, make(chan string, 1))
	defer tree.close()

	items := func(checked int) []kbpanel.MenuItem {
		return []kbpanel.MenuItem{
			{ID: "layout:0:us", Title: "Switch to English (US)", Checkable: true, Checked: checked == 0},
			{ID: "layout:1:us", Title: "Switch to English (US)", Checkable: true, Checked: checked == 1},
		}
	}

	tree.build(items(0))
	require.Len(t, m.roots, 2)

	assert.Empty(t, tree.update(items(1)))
	assert.False(t, m.roots[0].checked)
	assert.True(t, m.roots[1].checked)
}

func TestMenuTree_BuildUpdateAndForward(t *testing.T) {
	m := &fakeMenu{}
	clicks := make(chan string, 1)
	tree := newMenuTree(m.adder(nil), func() { m.separators++ }, clicks)
	defer tree.close()

	tree.build(testItems("RU"))
	require.Len(t, m.roots, 3)
	assert.Equal(t, 1, m.separators)
	assert.True(t, m.roots[0].disabled)
	assert.False(t, m.roots[1].checked)
	require.Len(t, m.roots[2].children, 1)

	missing := tree.update(testItems("US"))
	assert.Empty(t, missing)
	assert.Equal(t, "Current: US", m.roots[0].title)
	assert.True(t, m.roots[1].checked)
	assert.True(t, m.roots[0].disabled)

	extra := append(testItems("US"), kbpanel.MenuItem{ID: "quit", Title: "Quit"})
	missing = tree.update(extra)
	require.Len(t, missing, 1)
	assert.Equal(t, "quit", missing[0].ID)

	m.roots[2].children[0].clicked <- struct{}{}
	select {
	case id := <-clicks:
		assert.Equal(t, "show-text", id)
	case <-time.After(5 * time.Second):
		t.Fatal("click not forwarded")
	}
}
