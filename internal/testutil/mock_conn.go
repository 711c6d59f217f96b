//go:build !production

package testutil

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"
)

var ErrOutputFull = errors.New("mock conn: output buffer full")

// MockConn is an in-memory line connection. Lines queued with Feed are read
// by the server; lines the server writes are collected for assertions.
type MockConn struct {
	in     chan string
	out    chan string
	closed chan struct{}
	once   sync.Once
}

func NewMockConn() *MockConn {
	return &MockConn{
		in:     make(chan string, 64),
		out:    make(chan string, 1024),
		closed: make(chan struct{}),
	}
}

func (c *MockConn) ReadLine() (string, error) {
	select {
	case line, ok := <-c.in:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case <-c.closed:
		return "", net.ErrClosed
	}
}

func (c *MockConn) WriteLine(line string) error {
	select {
	case <-c.closed:
		return net.ErrClosed
	default:
	}
	select {
	case c.out <- line:
		return nil
	default:
		return ErrOutputFull
	}
}

func (c *MockConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *MockConn) RemoteAddr() string { return "mock" }

// Feed queues a line for the server to read.
func (c *MockConn) Feed(line string) {
	c.in <- line
}

// Closed reports whether Close was called.
func (c *MockConn) Closed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// Drain returns every line written so far.
func (c *MockConn) Drain() []string {
	var lines []string
	for {
		select {
		case line := <-c.out:
			lines = append(lines, line)
		default:
			return lines
		}
	}
}

// Next waits up to timeout for the next written line.
func (c *MockConn) Next(timeout time.Duration) (string, bool) {
	select {
	case line := <-c.out:
		return line, true
	case <-time.After(timeout):
		return "", false
	}
}
