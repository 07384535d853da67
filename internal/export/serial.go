package export

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Faultbox/coverbot/pkg/coverage"
	"github.com/tarm/serial"
	"go.uber.org/zap"
)

// Streaming errors.
var (
	ErrRejected = errors.New("controller rejected command")
	ErrNoAck    = errors.New("controller did not acknowledge")
)

// Port is a serial connection to a motion controller.
type Port interface {
	io.ReadWriteCloser
	Flush() error
}

// SerialConfig holds serial port settings.
type SerialConfig struct {
	Device      string
	Baud        int
	ReadTimeout time.Duration
}

// DefaultSerialConfig returns 115200 baud with a one second read timeout.
func DefaultSerialConfig(device string) SerialConfig {
	return SerialConfig{
		Device:      device,
		Baud:        115200,
		ReadTimeout: time.Second,
	}
}

type nativePort struct {
	port *serial.Port
}

func (p nativePort) Read(b []byte) (int, error)  { return p.port.Read(b) }
func (p nativePort) Write(b []byte) (int, error) { return p.port.Write(b) }
func (p nativePort) Close() error                { return p.port.Close() }

// Flush is a no-op: every Write on a tarm port has already reached the
// driver, and its own Flush discards pending bytes.
func (p nativePort) Flush() error { return nil }

// Open opens a serial device.
func Open(cfg SerialConfig) (Port, error) {
	if cfg.Device == "" {
		return nil, errors.New("no serial device configured")
	}
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}
	return nativePort{p}, nil
}

// Streamer sends G-code one line at a time and waits for the controller's
// "ok" before sending the next, as Grbl and Marlin expect.
type Streamer struct {
	port Port
	r    *bufio.Reader
	log  *zap.Logger
}

// NewStreamer wraps an open port. A nil log discards output.
func NewStreamer(port Port, log *zap.Logger) *Streamer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Streamer{port: port, r: bufio.NewReader(port), log: log}
}

// Send writes one command and blocks until it is acknowledged.
func (s *Streamer) Send(line string) error {
	if _, err := io.WriteString(s.port, line+"\n"); err != nil {
		return fmt.Errorf("write %q: %w", line, err)
	}
	for {
		reply, err := s.r.ReadString('\n')
		reply = strings.TrimSpace(reply)
		switch {
		case strings.HasPrefix(reply, "ok"):
			return nil
		case strings.HasPrefix(reply, "error"), strings.HasPrefix(reply, "!!"):
			return fmt.Errorf("%w: %q: %s", ErrRejected, line, reply)
		case reply != "":
			s.log.Debug("controller message", zap.String("reply", reply))
		}
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrNoAck, line, err)
		}
	}
}

// SendPath streams the G-code for path and returns how many lines were
// acknowledged. It stops between lines when ctx is cancelled.
func (s *Streamer) SendPath(ctx context.Context, path coverage.OrderedPath, opts Options) (int, error) {
	sent := 0
	for _, line := range Lines(path, opts) {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if strings.HasPrefix(line, ";") {
			continue
		}
		if err := s.Send(line); err != nil {
			return sent, err
		}
		sent++
	}
	s.log.Info("path streamed", zap.Int("lines", sent))
	return sent, s.port.Flush()
}

// Close closes the underlying port.
func (s *Streamer) Close() error {
	return s.port.Close()
}
