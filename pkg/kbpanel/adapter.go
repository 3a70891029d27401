package kbpanel

import (
	"context"
	"errors"
	"go.uber.org/zap"
	"strings"
)

const DefaultLayout = "en"

var (
	FallbackLayouts = []string{"us", "ru"}

	ErrNoLayouts = errors.New("no layouts reported")
)

// Result carries a best-effort value together with the fact that it is a
// substitute for what the layout tool should have reported.
type Result[T any] struct {
	Value    T
	Fallback bool
	Err      error
}

// Adapter never fails: every query path returns a usable value.
type Adapter struct {
	source LayoutSource
	log    *zap.SugaredLogger
}

func NewAdapter(source LayoutSource, log *zap.SugaredLogger) *Adapter {
	return &Adapter{source: source, log: log}
}

func (a *Adapter) ListLayouts(ctx context.Context) Result[[]string] {
	state, err := a.source.Query(ctx)
	if err == nil && len(state.Layouts) == 0 {
		err = ErrNoLayouts
	}
	if err != nil {
		a.log.Warnw("using fallback layouts", "fallback", FallbackLayouts, "error", err)
		return Result[[]string]{Value: append([]string(nil), FallbackLayouts...), Fallback: true, Err: err}
	}

	return Result[[]string]{Value: state.Layouts}
}

func (a *Adapter) CurrentLayout(ctx context.Context) Result[string] {
	state, err := a.source.Query(ctx)
	if err == nil && strings.TrimSpace(state.Active) == "" {
		err = ErrNoLayouts
	}
	if err != nil {
		a.log.Debugw("using default layout", "default", DefaultLayout, "error", err)
		return Result[string]{Value: DefaultLayout, Fallback: true, Err: err}
	}

	return Result[string]{Value: state.Active}
}

func (a *Adapter) SetLayout(ctx context.Context, code string) bool {
	if err := a.source.Apply(ctx, code); err != nil {
		a.log.Warnw("switch layout failed", "layout", code, "error", err)
		return false
	}
	return true
}
