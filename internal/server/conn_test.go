package server

import (
	"bufio"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineConn(t *testing.T) {
	t.Parallel()

	server, client := net.Pipe()
	conn := NewLineConn(server)
	t.Cleanup(func() { _ = conn.Close() })

	go func() {
		_, _ = io.WriteString(client, "alice\r\nplay 1 2\n")
		r := bufio.NewReader(client)
		line, _ := r.ReadString('\n')
		_, _ = io.WriteString(client, "echo "+line)
		_ = client.Close()
	}()

	line, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "alice", line)

	line, err = conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "play 1 2", line)

	require.NoError(t, conn.WriteLine("ok:"))
	line, err = conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "echo ok:", line)

	_, err = conn.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineConn_TooLong(t *testing.T) {
	t.Parallel()

	server, client := net.Pipe()
	conn := NewLineConn(server)
	t.Cleanup(func() { _ = conn.Close(); _ = client.Close() })

	go func() { _, _ = io.WriteString(client, strings.Repeat("x", maxLineSize+1)+"\n") }()

	_, err := conn.ReadLine()
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}
