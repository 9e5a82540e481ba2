// Package acpi delivers firmware notifications to installed callbacks.
// Events arrive on the acpid socket as text lines of the form
//
//	<class> <device> <notify-value> <data>
//
// and are routed by class to the callback installed for that source.
package acpi

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"qc71-service/internal/logger"
	"qc71-service/internal/types"
)

const SocketPath = "/var/run/acpid.socket"

// Callback receives the decoded payload of one firmware notification.
type Callback func(source string, payload types.EventPayload)

type Listener struct {
	socketPath string
	logger     *logger.Logger

	mu       sync.RWMutex
	handlers map[string]Callback

	connMu sync.Mutex
	conn   net.Conn
}

func NewListener(socketPath string, l *logger.Logger) *Listener {
	if socketPath == "" {
		socketPath = SocketPath
	}
	return &Listener{
		socketPath: socketPath,
		logger:     l,
		handlers:   make(map[string]Callback),
	}
}

// Install registers a callback for one notification source. The first
// install opens the event socket; a connection failure is reported to the
// caller so each source can be retried independently.
func (l *Listener) Install(source string, cb Callback) error {
	if err := l.ensureConnected(); err != nil {
		return fmt.Errorf("notification channel unavailable: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[source] = cb
	return nil
}

// Remove uninstalls the callback for source. Removing a source that was
// never installed is a no-op.
func (l *Listener) Remove(source string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.handlers, source)
}

func (l *Listener) ensureConnected() error {
	l.connMu.Lock()
	defer l.connMu.Unlock()

	if l.conn != nil {
		return nil
	}
	conn, err := net.Dial("unix", l.socketPath)
	if err != nil {
		return err
	}
	l.conn = conn
	l.logger.Infof("connected to %s", l.socketPath)
	return nil
}

func (l *Listener) currentConn() net.Conn {
	l.connMu.Lock()
	defer l.connMu.Unlock()
	return l.conn
}

func (l *Listener) dropConn() {
	l.connMu.Lock()
	defer l.connMu.Unlock()
	if l.conn != nil {
		l.conn.Close()
		l.conn = nil
	}
}

// Serve reads event lines and dispatches them until the context is
// cancelled. Connection loss is retried; a dead firmware channel degrades
// the daemon, it does not kill it.
func (l *Listener) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		l.dropConn()
	}()

	for {
		if err := l.ensureConnected(); err != nil {
			l.logger.Warnf("event socket unavailable: %v", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
				continue
			}
		}

		scanner := bufio.NewScanner(l.currentConn())
		for scanner.Scan() {
			l.dispatchLine(scanner.Text())
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.logger.Warnf("event socket read ended: %v", scanner.Err())
		l.dropConn()
	}
}

func (l *Listener) dispatchLine(line string) {
	source, payload, err := parseEvent(line)
	if err != nil {
		l.logger.Debugf("skipping event line %q: %v", line, err)
		return
	}

	l.mu.RLock()
	cb := l.handlers[source]
	l.mu.RUnlock()

	if cb == nil {
		l.logger.Debugf("no handler installed for source %s", source)
		return
	}
	cb(source, payload)
}

// parseEvent splits an acpid event line. The trailing data field decodes
// to an integer payload when it is hex, otherwise the remainder of the
// line is passed through as a string payload for diagnostics.
func parseEvent(line string) (string, types.EventPayload, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", types.EventPayload{}, fmt.Errorf("short event line")
	}

	source := fields[0]
	data := fields[len(fields)-1]

	value, err := strconv.ParseUint(strings.TrimPrefix(data, "0x"), 16, 64)
	if err != nil {
		return source, types.EventPayload{
			Kind:   types.PayloadString,
			String: strings.Join(fields[1:], " "),
		}, nil
	}
	return source, types.IntegerPayload(value), nil
}
