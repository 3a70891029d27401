package kbpanel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestListLayouts_FallbackOnError(t *testing.T) {
	a := NewAdapter(&fakeSource{queryErr: errTool}, zap.NewNop().Sugar())

	res := a.ListLayouts(context.Background())
	assert.Equal(t, []string{"us", "ru"}, res.Value)
	assert.True(t, res.Fallback)
	assert.ErrorIs(t, res.Err, errTool)
}

func TestListLayouts_FallbackOnEmpty(t *testing.T) {
	a := NewAdapter(&fakeSource{}, zap.NewNop().Sugar())

	res := a.ListLayouts(context.Background())
	assert.Equal(t, []string{"us", "ru"}, res.Value)
	assert.ErrorIs(t, res.Err, ErrNoLayouts)
}

func TestListLayouts_FallbackIsACopy(t *testing.T) {
	a := NewAdapter(&fakeSource{queryErr: errTool}, zap.NewNop().Sugar())

	res := a.ListLayouts(context.Background())
	res.Value[0] = "xx"

	assert.Equal(t, []string{"us", "ru"}, a.ListLayouts(context.Background()).Value)
}

func TestListLayouts_ReportsSource(t *testing.T) {
	src := &fakeSource{state: State{Layouts: []string{"de", "fr", "de"}, Active: "de"}}
	a := NewAdapter(src, zap.NewNop().Sugar())

	res := a.ListLayouts(context.Background())
	assert.Equal(t, []string{"de", "fr", "de"}, res.Value)
	assert.False(t, res.Fallback)
	assert.NoError(t, res.Err)
}

func TestCurrentLayout(t *testing.T) {
	a := NewAdapter(&fakeSource{state: State{Layouts: []string{"ru", "us"}, Active: "ru"}}, zap.NewNop().Sugar())
	res := a.CurrentLayout(context.Background())
	assert.Equal(t, "ru", res.Value)
	assert.False(t, res.Fallback)

	a = NewAdapter(&fakeSource{queryErr: errTool}, zap.NewNop().Sugar())
	res = a.CurrentLayout(context.Background())
	assert.Equal(t, "en", res.Value)
	assert.True(t, res.Fallback)

	a = NewAdapter(&fakeSource{state: State{Active: "  "}}, zap.NewNop().Sugar())
	assert.Equal(t, "en", a.CurrentLayout(context.Background()).Value)
}

func TestSetLayout(t *testing.T) {
	src := &fakeSource{}
	a := NewAdapter(src, zap.NewNop().Sugar())
	assert.True(t, a.SetLayout(context.Background(), "de"))
	assert.Equal(t, []string{"de"}, src.applied)

	src.applyErr = errTool
	assert.False(t, a.SetLayout(context.Background(), "fr"))
}
