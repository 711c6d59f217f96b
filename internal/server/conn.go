package server

import (
	"bufio"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时（pong 等待时间）
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 单行最大长度
	maxLineSize = 4096
)

// Conn is a player's line transport. Lines arrive in order; writes must be
// serialized by the caller.
type Conn interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
	RemoteAddr() string
}

// lineConn frames a stream connection by newlines.
type lineConn struct {
	conn    net.Conn
	scanner *bufio.Scanner
}

// NewLineConn wraps a TCP connection speaking newline-terminated text.
func NewLineConn(c net.Conn) Conn {
	s := bufio.NewScanner(c)
	s.Buffer(make([]byte, 0, 512), maxLineSize)
	return &lineConn{conn: c, scanner: s}
}

func (c *lineConn) ReadLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(c.scanner.Text(), "\r"), nil
}

func (c *lineConn) WriteLine(line string) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_, err := io.WriteString(c.conn, line+"\n")
	return err
}

func (c *lineConn) Close() error { return c.conn.Close() }

func (c *lineConn) RemoteAddr() string { return c.conn.RemoteAddr().String() }

// wsConn carries one protocol line per WebSocket text message and keeps the
// connection alive with pings.
type wsConn struct {
	conn      *websocket.Conn
	done      chan struct{}
	closeOnce sync.Once
}

func newWSConn(c *websocket.Conn) *wsConn {
	wc := &wsConn{conn: c, done: make(chan struct{})}

	c.SetReadLimit(maxLineSize)
	_ = c.SetReadDeadline(time.Now().Add(pongWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(pongWait))
	})

	go wc.pingLoop()
	return wc
}

func (c *wsConn) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			// WriteControl may run concurrently with WriteMessage.
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (c *wsConn) ReadLine() (string, error) {
	for {
		typ, data, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if typ == websocket.TextMessage {
			return strings.TrimRight(string(data), "\r\n"), nil
		}
	}
}

func (c *wsConn) WriteLine(line string) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (c *wsConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		err = c.conn.Close()
	})
	return err
}

func (c *wsConn) RemoteAddr() string { return c.conn.RemoteAddr().String() }
