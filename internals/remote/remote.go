// Package remote streams status and progress events to a websocket (eg. a GUI
// frontend or a dashboard)
package remote

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/evergales/tinkaros/internals/ownhttp"
)

// BufferSize is the number of events that can be queued before events are dropped
const BufferSize = 64

var (
	// ErrBufferFull is returned if the remote does not keep up
	ErrBufferFull = errors.New("remote is too slow, event dropped")
	// ErrClosed is returned when sending on a closed connection
	ErrClosed = errors.New("remote connection is closed")
)

// Connection is a `notify.Notifier` that sends every update as a json WebEvent.
// Sending never blocks: events are queued and written by a background goroutine
type Connection struct {
	conn   *websocket.Conn
	events chan WebEvent
	done   chan struct{}

	mu     sync.Mutex
	err    error
	closed bool

	WriteTimeout time.Duration
}

// Dial connects to the websocket at url
func Dial(ctx context.Context, url string) (*Connection, error) {
	header := http.Header{}
	header.Set("User-Agent", ownhttp.UserAgent)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return newConnection(conn), nil
}

func newConnection(conn *websocket.Conn) *Connection {
	c := &Connection{
		conn:         conn,
		events:       make(chan WebEvent, BufferSize),
		done:         make(chan struct{}),
		WriteTimeout: 5 * time.Second,
	}
	go c.writeLoop()
	return c
}

func (c *Connection) writeLoop() {
	defer close(c.done)
	for event := range c.events {
		c.conn.SetWriteDeadline(time.Now().Add(c.WriteTimeout))
		if err := c.conn.WriteJSON(event); err != nil {
			c.mu.Lock()
			if c.err == nil {
				c.err = err
			}
			c.mu.Unlock()
		}
	}
}

// SendEvent queues an event
func (c *Connection) SendEvent(name string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.err != nil {
		return c.err
	}

	select {
	case c.events <- WebEvent{Event: name, Data: data}:
		return nil
	default:
		return ErrBufferFull
	}
}

// Status sends a "status" event
func (c *Connection) Status(msg string) error {
	return c.SendEvent(EventStatus, StatusUpdate{Status: msg})
}

// Progress sends a "progressUpdate" event
func (c *Connection) Progress(percent int) error {
	return c.SendEvent(EventProgress, ProgressUpdate{Progress: percent})
}

// Close flushes all queued events and closes the connection
func (c *Connection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.events)
	c.mu.Unlock()

	<-c.done

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}
