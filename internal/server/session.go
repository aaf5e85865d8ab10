package server

import (
	"log/slog"
	"net"
	"time"

	"github.com/memoryxin/battlechess/internal/protocol"
)

const (
	// outboundBuffer is how many frames may queue for a slow reader before
	// the connection is dropped
	outboundBuffer = 256
	writeTimeout   = 10 * time.Second
)

// Session is one client connection. The name is empty until a successful
// signin and is only ever touched by the event loop; the reader goroutine
// owns nothing but the decoder, the writer goroutine nothing but the
// outbound queue.
type Session struct {
	id     int64
	conn   net.Conn
	logger *slog.Logger
	out    chan []byte

	// name of the authenticated user, event-loop owned
	name string
}

func newSession(id int64, conn net.Conn, logger *slog.Logger) *Session {
	return &Session{
		id:     id,
		conn:   conn,
		logger: logger.With(slog.Int64("conn", id)),
		out:    make(chan []byte, outboundBuffer),
	}
}

// readLoop feeds raw reads through the framing decoder and posts complete
// messages to the event loop, followed by a disconnect event when the
// connection dies. It never blocks past server shutdown.
func (s *Session) readLoop(events chan<- event, done <-chan struct{}) {
	defer func() { _ = s.conn.Close() }()

	dec := protocol.NewDecoder(s.logger)
	buf := make([]byte, 4096)
	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			for _, msg := range dec.Feed(buf[:n]) {
				select {
				case events <- event{kind: eventMessage, sess: s, msg: msg}:
				case <-done:
					return
				}
			}
		}
		if err != nil {
			select {
			case events <- event{kind: eventDisconnect, sess: s}:
			case <-done:
			}
			return
		}
	}
}

// writeLoop drains the outbound queue onto the socket. A write that fails
// or exceeds the deadline tears the connection down; the reader notices and
// reports the disconnect through the usual path.
func (s *Session) writeLoop(done <-chan struct{}) {
	for {
		select {
		case data := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if _, err := s.conn.Write(data); err != nil {
				s.logger.Warn("write failed", slog.String("error", err.Error()))
				_ = s.conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}

// send encodes a message and queues it as one frame
func (s *Session) send(v any) {
	data, err := protocol.Encode(v)
	if err != nil {
		s.logger.Error("encoding reply failed", slog.String("error", err.Error()))
		return
	}
	s.enqueue(data)
}

// sendRaw queues an already-parsed line, re-framing it with the delimiter
func (s *Session) sendRaw(line []byte) {
	framed := make([]byte, 0, len(line)+1)
	framed = append(framed, line...)
	framed = append(framed, '\n')
	s.enqueue(framed)
}

// enqueue hands a frame to the writer goroutine and never blocks the event
// loop. A full queue means the peer has stopped reading; the connection is
// dropped rather than letting its backlog stall every other client.
func (s *Session) enqueue(data []byte) {
	select {
	case s.out <- data:
	default:
		s.logger.Warn("outbound queue full, dropping connection")
		_ = s.conn.Close()
	}
}

// close tears down the transport; the reader notices and reports disconnect
func (s *Session) close() {
	_ = s.conn.Close()
}
