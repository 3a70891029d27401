package hyprland

import (
	"errors"
	"fmt"
	"github.com/adrg/xdg"
	"net"
	"os"
	"path/filepath"
)

var ErrNotRunning = errors.New("hyprland might not be running")

func connect(sock socketType) (net.Conn, error) {
	socketPath, err := getSocketPath(sock)
	if err != nil {
		return nil, fmt.Errorf("get socket path: %w", err)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return conn, nil
}

type socketType int

const (
	HyprctlSocket socketType = iota
	Socket2
)

func (s socketType) filename() (string, error) {
	switch s {
	case HyprctlSocket:
		return ".socket.sock", nil
	case Socket2:
		return ".socket2.sock", nil
	}

	return "", fmt.Errorf("unknown socket type: %d", s)
}

func Running() bool {
	return os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != ""
}

func getSocketPath(sock socketType) (string, error) {
	signature := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if signature == "" {
		return "", fmt.Errorf("HYPRLAND_INSTANCE_SIGNATURE is not set, %w", ErrNotRunning)
	}

	name, err := sock.filename()
	if err != nil {
		return "", err
	}

	// newer releases keep their sockets in the runtime dir, older ones in /tmp
	candidates := []string{
		filepath.Join(xdg.RuntimeDir, "hypr", signature, name),
		filepath.Join("/tmp/hypr", signature, name),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no %s socket for instance %s, %w", name, signature, ErrNotRunning)
}
