package xkb

import (
	"bufio"
	"bytes"
	"codeberg.org/miketth/kbpanel/pkg/kbpanel"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var ErrNoLayoutLine = errors.New("no layout line in setxkbmap output")

const layoutPrefix = "layout:"

type Setxkbmap struct {
	Path string
}

func (s Setxkbmap) runCommand(ctx context.Context, args ...string) (string, error) {
	var stdout bytes.Buffer

	path := s.Path
	if path == "" {
		path = "setxkbmap"
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stdout

	err := cmd.Run()
	outStr := strings.TrimSpace(stdout.String())
	if err != nil {
		return "", fmt.Errorf("setxkbmap: %w, output: %s", err, outStr)
	}

	return outStr, nil
}

func (s Setxkbmap) Query(ctx context.Context) (kbpanel.State, error) {
	out, err := s.runCommand(ctx, "-query")
	if err != nil {
		return kbpanel.State{}, err
	}

	layouts, err := ParseQuery(out)
	if err != nil {
		return kbpanel.State{}, err
	}

	// setxkbmap only knows the configured group list; the first group is
	// the one it applies.
	return kbpanel.State{Layouts: layouts, Active: layouts[0]}, nil
}

func (s Setxkbmap) Apply(ctx context.Context, code string) error {
	_, err := s.runCommand(ctx, code)
	return err
}

// ParseQuery extracts the layout codes from `setxkbmap -query` output.
func ParseQuery(out string) ([]string, error) {
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, layoutPrefix) {
			continue
		}

		var layouts []string
		for _, l := range strings.Split(strings.TrimPrefix(line, layoutPrefix), ",") {
			if l = strings.TrimSpace(l); l != "" {
				layouts = append(layouts, l)
			}
		}
		if len(layouts) == 0 {
			break
		}
		return layouts, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan output: %w", err)
	}

	return nil, ErrNoLayoutLine
}
