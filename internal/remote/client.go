// ABOUTME: Websocket client for the remote control endpoint
// ABOUTME: Used by the wavecast-remote CLI to send commands to a player
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Resonate-Protocol/wavecast/internal/protocol"
	"github.com/gorilla/websocket"
)

// Client is a connection to a player's control endpoint
type Client struct {
	conn  *websocket.Conn
	hello protocol.Hello
}

// Dial connects to url (ws://host:port/control) and reads the server hello
func Dial(ctx context.Context, url string) (*Client, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	c := &Client{conn: conn}
	if err := c.read(&c.hello); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to read hello: %w", err)
	}

	return c, nil
}

// Hello returns the greeting the server sent on connect
func (c *Client) Hello() protocol.Hello {
	return c.hello
}

// Send sends a request and waits for its reply. A reply carrying an error
// is returned as an error.
func (c *Client) Send(req protocol.Request) (protocol.Reply, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return protocol.Reply{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return protocol.Reply{}, fmt.Errorf("failed to send request: %w", err)
	}

	var reply protocol.Reply
	if err := c.read(&reply); err != nil {
		return protocol.Reply{}, fmt.Errorf("failed to read reply: %w", err)
	}
	if reply.Error != "" {
		return reply, errors.New(reply.Error)
	}

	return reply, nil
}

func (c *Client) read(v any) error {
	c.conn.SetReadDeadline(time.Now().Add(writeDeadline))
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Close closes the connection
func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}
