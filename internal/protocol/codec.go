package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

const delimiter = '\n'

// ErrNoType marks a line that parsed as JSON but carries no type field
var ErrNoType = errors.New("message has no type field")

// Encode serializes a message and appends the newline delimiter
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return append(data, delimiter), nil
}

// Parse decodes a single line into a Message. A blank line yields (nil, nil).
func Parse(line []byte) (*Message, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, nil
	}

	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(line, &envelope); err != nil {
		return nil, err
	}
	if envelope.Type == "" {
		return nil, ErrNoType
	}

	raw := make([]byte, len(line))
	copy(raw, line)
	return &Message{Type: envelope.Type, Raw: raw}, nil
}

// Decoder reassembles messages from an arbitrarily chunked byte stream.
// TCP may coalesce several frames into one read or split one frame across
// reads; the decoder buffers until a delimiter arrives and emits complete
// messages in order. Lines that fail to parse are logged and dropped.
type Decoder struct {
	buf    []byte
	logger *slog.Logger
}

// NewDecoder creates a Decoder. The logger may be nil.
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{logger: logger}
}

// Feed appends a chunk to the buffer and returns all messages completed by it
func (d *Decoder) Feed(p []byte) []*Message {
	d.buf = append(d.buf, p...)

	var msgs []*Message
	for {
		i := bytes.IndexByte(d.buf, delimiter)
		if i < 0 {
			return msgs
		}
		line := d.buf[:i]
		d.buf = d.buf[i+1:]

		msg, err := Parse(line)
		if err != nil {
			d.logger.Warn("dropping malformed message",
				slog.String("line", string(line)),
				slog.String("error", err.Error()))
			continue
		}
		if msg == nil {
			continue
		}
		msgs = append(msgs, msg)
	}
}

// Pending reports whether the decoder holds an incomplete frame
func (d *Decoder) Pending() bool {
	return len(d.buf) > 0
}
