package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/memoryxin/battlechess/internal/protocol"
)

// Client is a game protocol client speaking newline-delimited JSON over TCP
type Client struct {
	conn    net.Conn
	dec     *protocol.Decoder
	pending []*protocol.Message
}

// Dial connects to the game server
func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	return &Client{
		conn: conn,
		dec:  protocol.NewDecoder(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, nil
}

// Send encodes and writes one frame
func (c *Client) Send(v any) error {
	data, err := protocol.Encode(v)
	if err != nil {
		return err
	}
	_, err = c.conn.Write(data)
	return err
}

// Recv returns the next message, waiting up to timeout
func (c *Client) Recv(timeout time.Duration) (*protocol.Message, error) {
	if len(c.pending) > 0 {
		msg := c.pending[0]
		c.pending = c.pending[1:]
		return msg, nil
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	buf := make([]byte, 4096)
	for {
		n, err := c.conn.Read(buf)
		if err != nil {
			return nil, err
		}
		if msgs := c.dec.Feed(buf[:n]); len(msgs) > 0 {
			c.pending = msgs[1:]
			return msgs[0], nil
		}
	}
}

// Close tears down the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// SignIn authenticates and returns the server's reply
func (c *Client) SignIn(name, passwd string) (*protocol.Reply, error) {
	return c.authRequest(protocol.TypeSignIn, name, passwd)
}

// SignUp registers a new account and returns the server's reply
func (c *Client) SignUp(name, passwd string) (*protocol.Reply, error) {
	return c.authRequest(protocol.TypeSignUp, name, passwd)
}

func (c *Client) authRequest(typ, name, passwd string) (*protocol.Reply, error) {
	err := c.Send(protocol.AuthRequest{
		Type: typ,
		User: protocol.Credentials{Name: name, Passwd: passwd},
	})
	if err != nil {
		return nil, err
	}

	msg, err := c.Recv(10 * time.Second)
	if err != nil {
		return nil, err
	}
	var reply protocol.Reply
	if err := msg.Decode(&reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
