package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/palemoky/tichu/internal/protocol"
)

const (
	dialTimeout = 10 * time.Second
	writeWait   = 10 * time.Second
	maxLineSize = 4096
)

// ErrClosed is returned once the connection is gone.
var ErrClosed = errors.New("connection closed")

// Client 行协议 TCP 客户端
type Client struct {
	Addr string
	Name string

	conn    net.Conn
	receive chan protocol.Response
	done    chan struct{}
	readErr error // set before receive is closed

	mu     sync.Mutex
	closed bool
}

// NewClient 创建客户端
func NewClient(addr, name string) *Client {
	return &Client{
		Addr:    addr,
		Name:    name,
		receive: make(chan protocol.Response, 256),
		done:    make(chan struct{}),
	}
}

// Connect dials the server and introduces the player by name.
func (c *Client) Connect() error {
	conn, err := net.DialTimeout("tcp", c.Addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.Addr, err)
	}
	c.conn = conn

	if err := c.writeLine(c.Name); err != nil {
		_ = conn.Close()
		return err
	}

	go c.readPump()
	log.Info().Str("addr", c.Addr).Str("user", c.Name).Msg("connected")
	return nil
}

// readPump 从服务器读取消息
func (c *Client) readPump() {
	defer close(c.receive)

	sc := bufio.NewScanner(c.conn)
	sc.Buffer(make([]byte, 0, 1024), maxLineSize)
	for sc.Scan() {
		select {
		case c.receive <- protocol.ParseResponse(sc.Text()):
		case <-c.done:
			return
		}
	}
	c.readErr = sc.Err()
}

// Receive blocks until the next server line arrives.
func (c *Client) Receive() (protocol.Response, error) {
	resp, ok := <-c.receive
	if !ok {
		if c.readErr != nil {
			return protocol.Response{}, c.readErr
		}
		return protocol.Response{}, ErrClosed
	}
	return resp, nil
}

// Send writes one command line.
func (c *Client) Send(req protocol.Request) error {
	return c.writeLine(req.String())
}

func (c *Client) writeLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_, err := io.WriteString(c.conn, line+"\n")
	return err
}

// Close 关闭连接
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.conn == nil {
		return nil
	}
	c.closed = true
	close(c.done)
	return c.conn.Close()
}
