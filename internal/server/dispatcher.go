package server

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/memoryxin/battlechess/internal/model"
	"github.com/memoryxin/battlechess/internal/protocol"
)

// Failure reasons shown to the user, in the desktop client's language
const (
	reasonAlreadyOnline = "该账号在其他地方已登录。"
	reasonNoSuchUser    = "用户名 %s 不存在。"
	reasonWrongPassword = "密码错误。"
	reasonSystemTrouble = "系统出了一点问题。"
	reasonServerTrouble = "服务器出了一点问题。"
	reasonNameTaken     = "用户名 %s 已被注册。"
)

// dispatch routes one decoded message. The five lobby operations have
// dedicated handlers; everything else is an in-game packet and is relayed
// verbatim to the sender's opponent without interpretation. The server does
// not validate moves; both clients run the rule engine themselves.
func (s *Server) dispatch(sess *Session, msg *protocol.Message) {
	switch msg.Type {
	case protocol.TypeSignIn:
		s.handleSignIn(sess, msg)
	case protocol.TypeSignUp:
		s.handleSignUp(sess, msg)
	case protocol.TypeMatch:
		s.handleMatch(sess, msg)
	case protocol.TypeUnmatch:
		s.handleUnmatch(sess, msg)
	case protocol.TypeEndGame:
		s.handleEndGame(sess, msg)
	default:
		s.logger.Info("game packet",
			slog.String("name", sess.name),
			slog.String("type", msg.Type))
		s.relayToOpponent(sess, msg.Raw)
	}
}

func (s *Server) handleSignIn(sess *Session, msg *protocol.Message) {
	var req protocol.AuthRequest
	if err := msg.Decode(&req); err != nil {
		s.logger.Warn("bad signin request", slog.String("error", err.Error()))
		return
	}
	name := req.User.Name
	s.logger.Info("signin requested", slog.String("name", name))

	// Checked before the store: a name bound to a live session stays bound
	// no matter what password the newcomer presents
	if _, online := s.clients[name]; online {
		s.failAuth(sess, protocol.TypeSignIn, name, reasonAlreadyOnline)
		return
	}

	user, err := s.cfg.Auth.Authenticate(s.ctx, name, req.User.Passwd)
	if err != nil {
		var reason string
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			reason = fmt.Sprintf(reasonNoSuchUser, name)
		case errors.Is(err, model.ErrWrongPassword):
			reason = reasonWrongPassword
		default:
			s.logger.Error("signin store failure", slog.String("error", err.Error()))
			reason = reasonSystemTrouble
		}
		s.failAuth(sess, protocol.TypeSignIn, name, reason)
		return
	}

	sess.name = name
	s.clients[name] = sess
	s.cfg.Audit.Event(name, "登录了游戏")
	s.logger.Info("signin succeeded", slog.String("name", name))
	sess.send(protocol.Reply{
		Type:   protocol.TypeSignIn,
		Result: protocol.ResultSuccess,
		User:   user,
	})
}

func (s *Server) handleSignUp(sess *Session, msg *protocol.Message) {
	var req protocol.AuthRequest
	if err := msg.Decode(&req); err != nil {
		s.logger.Warn("bad signup request", slog.String("error", err.Error()))
		return
	}
	name := req.User.Name
	s.logger.Info("signup requested", slog.String("name", name))

	if _, err := s.cfg.Auth.Register(s.ctx, name, req.User.Passwd); err != nil {
		var reason string
		if errors.Is(err, model.ErrUserExists) {
			reason = fmt.Sprintf(reasonNameTaken, name)
		} else {
			s.logger.Error("signup store failure", slog.String("error", err.Error()))
			reason = reasonServerTrouble
		}
		s.failAuth(sess, protocol.TypeSignUp, name, reason)
		return
	}

	s.cfg.Audit.Event(name, "注册成为了新用户")
	s.logger.Info("signup succeeded", slog.String("name", name))
	sess.send(protocol.Reply{
		Type:   protocol.TypeSignUp,
		Result: protocol.ResultSuccess,
		Name:   name,
	})
}

func (s *Server) handleMatch(sess *Session, msg *protocol.Message) {
	var req protocol.NameRequest
	if err := msg.Decode(&req); err != nil {
		s.logger.Warn("bad match request", slog.String("error", err.Error()))
		return
	}
	name := req.Name
	s.logger.Info("match requested", slog.String("name", name))
	s.cfg.Audit.Event(name, "请求匹配游戏对手")

	s.cfg.Pool.Enqueue(name)

	first, second, ok := s.cfg.Pool.NextPair()
	if !ok {
		// No reply: the client shows its waiting screen until init arrives
		s.logger.Info("waiting for an opponent", slog.String("name", name))
		return
	}
	s.startMatch(first, second)
}

// startMatch deals one board and sends both personalized init packets.
// The first (older) waiter plays red; red always moves first.
func (s *Server) startMatch(first, second string) {
	firstUser, err := s.cfg.Auth.Lookup(s.ctx, first)
	if err == nil {
		var secondUser *model.User
		secondUser, err = s.cfg.Auth.Lookup(s.ctx, second)
		if err == nil {
			board := model.NewRandomBoard(s.cfg.Random)
			s.logger.Info("match started",
				slog.String("red", first),
				slog.String("blue", second))
			s.cfg.Audit.Event(fmt.Sprintf("%s 和 %s", first, second), "匹配成功")

			s.sendInit(first, board, model.ColorRed, *firstUser, *secondUser)
			s.sendInit(second, board, model.ColorBlue, *secondUser, *firstUser)
			return
		}
	}

	// Store failure while pairing: unwind the registry entries so neither
	// side is left pointing at a match that never started
	s.logger.Error("match setup failed",
		slog.String("first", first),
		slog.String("second", second),
		slog.String("error", err.Error()))
	s.cfg.Pool.EndMatch(first)
}

func (s *Server) sendInit(name string, board model.Board, color model.Color, me, you model.User) {
	sess, ok := s.clients[name]
	if !ok {
		// The waiter's connection vanished before its cleanup event ran;
		// dropped like any relay to a missing peer
		s.logger.Warn("no session for matched player", slog.String("name", name))
		return
	}
	sess.send(protocol.InitPacket{
		Type:  protocol.TypeInit,
		Chess: board,
		Turn:  model.ColorRed,
		Color: color,
		Me:    me,
		You:   you,
	})
}

func (s *Server) handleUnmatch(sess *Session, msg *protocol.Message) {
	var req protocol.NameRequest
	if err := msg.Decode(&req); err != nil {
		s.logger.Warn("bad unmatch request", slog.String("error", err.Error()))
		return
	}
	if s.cfg.Pool.Dequeue(req.Name) {
		s.cfg.Audit.Event(req.Name, "放弃了匹配")
		s.logger.Info("match request withdrawn", slog.String("name", req.Name))
	}
}

func (s *Server) handleEndGame(sess *Session, msg *protocol.Message) {
	var req protocol.EndGameRequest
	if err := msg.Decode(&req); err != nil {
		s.logger.Warn("bad endgame request", slog.String("error", err.Error()))
		return
	}

	if opponent, ok := s.cfg.Pool.EndMatch(sess.name); ok {
		s.logger.Info("game finished",
			slog.String("name", sess.name),
			slog.String("opponent", opponent))
		s.cfg.Audit.Event(fmt.Sprintf("%s 和 %s", sess.name, opponent), "的游戏结束")
	}

	if req.User == nil {
		return
	}
	s.logger.Info("saving game result",
		slog.String("name", req.User.Name),
		slog.Int("credit", req.User.Credit),
		slog.String("title", req.User.Title))
	if err := s.cfg.Auth.SaveResult(s.ctx, *req.User); err != nil {
		// Never fatal; the connection stays open and the result is lost
		s.logger.Error("failed to save result", slog.String("error", err.Error()))
	}
}

// relayToOpponent forwards a raw frame to the sender's registered opponent.
// Stray packets from unmatched or anonymous senders are silently discarded.
func (s *Server) relayToOpponent(sess *Session, raw []byte) {
	opponent, ok := s.cfg.Pool.Opponent(sess.name)
	if !ok {
		return
	}
	peer, ok := s.clients[opponent]
	if !ok {
		return
	}
	peer.sendRaw(raw)
}

func (s *Server) failAuth(sess *Session, typ, name, reason string) {
	s.logger.Info("request failed",
		slog.String("type", typ),
		slog.String("name", name),
		slog.String("reason", reason))
	sess.send(protocol.Reply{
		Type:   typ,
		Result: protocol.ResultFailed,
		Reason: reason,
	})
}
