package ble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kernzerfall/sp105e-go/internal/ble/protocol"
)

// Transport and state errors. Protocol-level failures are reported by
// the protocol package; everything here wraps one of these sentinels so
// callers can branch with errors.Is.
var (
	// ErrConnectionFailed means every connect attempt was exhausted.
	ErrConnectionFailed = errors.New("ble: failed to connect to device")
	// ErrCharacteristicNotFound means the device lacks the controller's
	// GATT service/characteristic pair.
	ErrCharacteristicNotFound = errors.New("ble: control characteristic not found")
	// ErrIncompleteStatus means the notification source ended before a
	// full status payload accumulated.
	ErrIncompleteStatus = errors.New("ble: incomplete status notification")
	// ErrClientFailed means the client hit a terminal failure; build a
	// new one to try again.
	ErrClientFailed = errors.New("ble: client is in failed state")
	// ErrNotConnected means Connect has not succeeded yet.
	ErrNotConnected = errors.New("ble: not connected")
)

// Options configures the connection and exchange policy.
type Options struct {
	ConnectAttempts int           // connect tries before giving up (default 3)
	ConnectBackoff  time.Duration // wait between connect tries (default 3s)
	StatusTimeout   time.Duration // notification wait bound when the caller's ctx has no deadline (default 5s)
}

// DefaultOptions returns the policy used by the CLI.
func DefaultOptions() Options {
	return Options{
		ConnectAttempts: 3,
		ConnectBackoff:  3 * time.Second,
		StatusTimeout:   5 * time.Second,
	}
}

type state int

const (
	stateDisconnected state = iota
	stateReady
	stateFailed
)

// Client owns a single controller session: one device, one discovered
// characteristic handle. Callers must serialize operations; the client
// does not make concurrent Send/QueryStatus safe. Once a client reaches
// the failed state (connect exhaustion, discovery miss, or a dropped
// link) it stays there — construct a new one for another attempt.
type Client struct {
	adapter Adapter
	addr    string
	profile protocol.Profile
	opts    Options

	mu         sync.Mutex
	state      state
	conn       Connection
	char       Characteristic
	closed     chan struct{} // closed when the link drops
	subscribed bool
	notifs     chan []byte // fed by the notification callback, nil until first exchange
}

// NewClient creates a client for the controller at addr, encoding frames
// through the given profile. No I/O happens until Connect.
func NewClient(adapter Adapter, addr string, profile protocol.Profile, opts Options) *Client {
	def := DefaultOptions()
	if opts.ConnectAttempts <= 0 {
		opts.ConnectAttempts = def.ConnectAttempts
	}
	if opts.ConnectBackoff <= 0 {
		opts.ConnectBackoff = def.ConnectBackoff
	}
	if opts.StatusTimeout <= 0 {
		opts.StatusTimeout = def.StatusTimeout
	}
	return &Client{
		adapter: adapter,
		addr:    addr,
		profile: profile,
		opts:    opts,
	}
}

// Connect establishes the link and discovers the control characteristic.
// Connecting is retried up to Options.ConnectAttempts times with a timed
// wait between tries; the wait is cut short if ctx is cancelled.
// Discovery is not retried. Idempotent while the client is ready.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case stateFailed:
		c.mu.Unlock()
		return ErrClientFailed
	case stateReady:
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.adapter.Enable(); err != nil {
		c.fail()
		return fmt.Errorf("ble: enable adapter: %w", err)
	}

	var conn Connection
	var lastErr error
	for attempt := 1; attempt <= c.opts.ConnectAttempts; attempt++ {
		if attempt > 1 {
			slog.Info("[BLE] connect backoff", "attempt", attempt, "delay", c.opts.ConnectBackoff)
			select {
			case <-time.After(c.opts.ConnectBackoff):
			case <-ctx.Done():
				c.fail()
				return fmt.Errorf("%w: %w", ErrConnectionFailed, ctx.Err())
			}
		}

		conn, lastErr = c.adapter.Connect(ctx, c.addr)
		if lastErr == nil {
			break
		}
		slog.Warn("[BLE] connect attempt failed", "attempt", attempt, "error", lastErr)
		conn = nil
	}
	if conn == nil {
		c.fail()
		return fmt.Errorf("%w after %d attempts: %w", ErrConnectionFailed, c.opts.ConnectAttempts, lastErr)
	}

	char, err := conn.DiscoverCharacteristic(ServiceUUID, CharacteristicUUID)
	if err != nil {
		conn.Disconnect()
		c.fail()
		return fmt.Errorf("%w: %w", ErrCharacteristicNotFound, err)
	}

	closed := make(chan struct{})
	var once sync.Once
	conn.OnDisconnect(func() {
		slog.Warn("[BLE] link dropped", "address", c.addr)
		once.Do(func() { close(closed) })
		c.fail()
	})

	c.mu.Lock()
	c.conn = conn
	c.char = char
	c.closed = closed
	c.state = stateReady
	c.mu.Unlock()

	slog.Info("[BLE] connected", "address", c.addr)
	return nil
}

// Send encodes the command and writes its frame to the control
// characteristic. No response is awaited.
func (c *Client) Send(cmd protocol.Command) error {
	char, _, err := c.ready()
	if err != nil {
		return err
	}

	frame := c.profile.Encode(cmd)
	if err := char.Write(frame[:]); err != nil {
		return fmt.Errorf("ble: write %s frame: %w", cmd.Kind(), err)
	}
	slog.Debug("[BLE] frame written", "command", cmd.Kind(), "frame", fmt.Sprintf("% X", frame[:]))
	return nil
}

// QueryStatus subscribes to notifications, writes the status-query frame
// and accumulates notification chunks until the full status payload has
// arrived, then decodes it. The subscription happens before the write so
// an early notification is never lost. If ctx carries no deadline,
// Options.StatusTimeout bounds the wait.
func (c *Client) QueryStatus(ctx context.Context) (protocol.Status, error) {
	raw, err := c.exchange(ctx, protocol.StatusQuery(), protocol.StatusLength)
	if err != nil {
		return protocol.Status{}, err
	}
	return protocol.DecodeStatus(raw)
}

// Hello performs the identification handshake: the controller must
// notify back its fixed acknowledgement bytes.
func (c *Client) Hello(ctx context.Context) error {
	raw, err := c.exchange(ctx, protocol.Hello(), protocol.HelloAckLength)
	if err != nil {
		return err
	}
	if !protocol.IsHelloAck(raw) {
		return fmt.Errorf("ble: unexpected hello reply % X", raw)
	}
	return nil
}

// exchange runs the subscribe-write-accumulate sequence shared by
// QueryStatus and Hello, returning exactly want bytes.
func (c *Client) exchange(ctx context.Context, cmd protocol.Command, want int) ([]byte, error) {
	char, closed, err := c.ready()
	if err != nil {
		return nil, err
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.StatusTimeout)
		defer cancel()
	}

	notifs, err := c.subscribe(char)
	if err != nil {
		return nil, fmt.Errorf("ble: subscribe: %w", err)
	}

	// Discard anything left over from a previous exchange so the
	// accumulator below only sees this command's reply.
drain:
	for {
		select {
		case <-notifs:
		default:
			break drain
		}
	}

	frame := c.profile.Encode(cmd)
	if err := char.Write(frame[:]); err != nil {
		return nil, fmt.Errorf("ble: write %s frame: %w", cmd.Kind(), err)
	}

	buf := make([]byte, 0, want)
	for len(buf) < want {
		select {
		case chunk := <-notifs:
			buf = append(buf, chunk...)
		case <-closed:
			return nil, fmt.Errorf("%w: got %d of %d bytes", ErrIncompleteStatus, len(buf), want)
		case <-ctx.Done():
			return nil, fmt.Errorf("ble: waiting for %s reply: %w", cmd.Kind(), ctx.Err())
		}
	}
	return buf[:want], nil
}

// subscribe enables notifications on the characteristic exactly once
// per client; BlueZ rejects a second EnableNotifications on the same
// characteristic. Later exchanges reuse the channel from the first.
func (c *Client) subscribe(char Characteristic) (chan []byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subscribed {
		return c.notifs, nil
	}

	notifs := make(chan []byte, 8)
	err := char.Subscribe(func(data []byte) {
		chunk := make([]byte, len(data))
		copy(chunk, data)
		select {
		case notifs <- chunk:
		default:
			slog.Warn("[BLE] notification buffer full, dropping chunk", "len", len(data))
		}
	})
	if err != nil {
		return nil, err
	}
	c.subscribed = true
	c.notifs = notifs
	return notifs, nil
}

// ready returns the characteristic handle, or the state error that
// forbids the operation.
func (c *Client) ready() (Characteristic, chan struct{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case stateFailed:
		return nil, nil, ErrClientFailed
	case stateDisconnected:
		return nil, nil, ErrNotConnected
	}
	return c.char, c.closed, nil
}

// fail moves the client to its terminal state.
func (c *Client) fail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = stateFailed
}

// Close drops the link. The client is not reusable afterwards; there is
// no teardown handshake with the controller.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.char = nil
	c.state = stateFailed
	c.mu.Unlock()

	if conn != nil {
		return conn.Disconnect()
	}
	return nil
}
