package hyprland

import (
	"bufio"
	"context"
	"fmt"
	"go.uber.org/zap"
	"io"
	"strings"
)

const eventActiveLayout = "activelayout"

// Client reads hyprland's event socket.
type Client struct {
	conn   io.ReadCloser
	reader *bufio.Reader
	log    *zap.SugaredLogger
}

func Connect(log *zap.SugaredLogger) (*Client, error) {
	conn, err := connect(Socket2)
	if err != nil {
		return nil, err
	}

	return newClient(conn, log), nil
}

func newClient(conn io.ReadCloser, log *zap.SugaredLogger) *Client {
	return &Client{conn: conn, reader: bufio.NewReader(conn), log: log}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) ReadLine() (string, error) {
	str, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read from hypr socket: %w", err)
	}
	return strings.TrimSuffix(str, "\n"), nil
}

// Changes emits a hint for every layout change event until ctx is done or
// the socket fails. Hints are coalesced when the reader is busy.
func (c *Client) Changes(ctx context.Context) <-chan struct{} {
	out := make(chan struct{}, 1)

	go func() {
		<-ctx.Done()
		c.Close()
	}()

	go func() {
		defer close(out)
		for {
			line, err := c.ReadLine()
			if err != nil {
				if ctx.Err() == nil {
					c.log.Warnw("hyprland event socket closed", "error", err)
				}
				return
			}

			if !isLayoutEvent(line) {
				continue
			}

			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()

	return out
}

func isLayoutEvent(line string) bool {
	evType, _, found := strings.Cut(line, ">>")
	return found && evType == eventActiveLayout
}
