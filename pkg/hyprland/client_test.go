package hyprland

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIsLayoutEvent(t *testing.T) {
	assert.True(t, isLayoutEvent("activelayout>>at-translated-set-2-keyboard,Russian"))
	assert.False(t, isLayoutEvent("activewindow>>kitty,~"))
	assert.False(t, isLayoutEvent("activelayout"))
}

func TestChanges(t *testing.T) {
	r, w := io.Pipe()
	c := newClient(r, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hints := c.Changes(ctx)

	go func() {
		_, _ = io.WriteString(w, "activewindow>>kitty,~\n")
		_, _ = io.WriteString(w, "activelayout>>kb,Russian\n")
	}()

	select {
	case _, ok := <-hints:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no layout hint")
	}

	cancel()
	select {
	case _, ok := <-hints:
		for ok {
			_, ok = <-hints
		}
	case <-time.After(5 * time.Second):
		t.Fatal("hints not closed after cancel")
	}
}
