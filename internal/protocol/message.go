// Package protocol implements the newline-delimited JSON wire protocol
// spoken between the game client and the server.
package protocol

import (
	"encoding/json"

	"github.com/memoryxin/battlechess/internal/model"
)

// Message types the dispatcher handles itself. Any other type is an in-game
// packet (move, open, giveup, ...) and is relayed opaquely to the opponent.
const (
	TypeSignIn  = "signin"
	TypeSignUp  = "signup"
	TypeMatch   = "match"
	TypeUnmatch = "unmatch"
	TypeEndGame = "endgame"
	TypeInit    = "init"
	TypeGiveUp  = "giveup"
)

// Result values for signin/signup replies
const (
	ResultSuccess = "success"
	ResultFailed  = "failed"
)

// Message is one decoded frame: its routing type plus the raw line it was
// parsed from. Raw is kept so unknown packet types can be relayed verbatim.
type Message struct {
	Type string
	Raw  []byte
}

// Decode unmarshals the full message into a typed payload
func (m *Message) Decode(v any) error {
	return json.Unmarshal(m.Raw, v)
}

// Credentials carries a name and plaintext password. The field name passwd
// matches the client and the user table column.
type Credentials struct {
	Name   string `json:"name"`
	Passwd string `json:"passwd"`
}

// AuthRequest is a signin or signup request
type AuthRequest struct {
	Type string      `json:"type"`
	User Credentials `json:"user"`
}

// NameRequest is a match or unmatch request
type NameRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// EndGameRequest finishes the caller's match. User is the client-computed
// final record to persist; nil means nothing to save (e.g. the loser already
// reported, or the game ended without a result).
type EndGameRequest struct {
	Type string      `json:"type"`
	User *model.User `json:"user"`
}

// Reply is the server's answer to signin and signup requests
type Reply struct {
	Type   string      `json:"type"`
	Result string      `json:"result"`
	Reason string      `json:"reason,omitempty"`
	Name   string      `json:"name,omitempty"` // signup success
	User   *model.User `json:"user,omitempty"` // signin success
}

// InitPacket starts a match. Both players receive the same board; color,
// me and you are personalized per recipient. Turn is always red.
type InitPacket struct {
	Type  string      `json:"type"`
	Chess model.Board `json:"chess"`
	Turn  model.Color `json:"turn"`
	Color model.Color `json:"color"`
	Me    model.User  `json:"me"`
	You   model.User  `json:"you"`
}

// GiveUp is relayed between clients when a player resigns, and synthesized
// by the server when a matched player disconnects
type GiveUp struct {
	Type string `json:"type"`
}
