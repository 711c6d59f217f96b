package server

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/palemoky/tichu/internal/apperrors"
	"github.com/palemoky/tichu/internal/logger"
	"github.com/palemoky/tichu/internal/protocol"
)

// serveConn is the worker of one connection. The first line is the
// username; every later line is a command.
func (s *Server) serveConn(conn Conn) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		_ = conn.Close()
	}()

	name, err := conn.ReadLine()
	if err != nil {
		log.Debug().Err(err).Str("addr", conn.RemoteAddr()).Msg("connection closed before username")
		return
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, ":,=") {
		name = GenerateNickname()
	}

	seat, err := s.table.Join(name, conn)
	if err != nil {
		log.Warn().Str("user", name).Str("addr", conn.RemoteAddr()).Msg("table full, rejecting connection")
		_ = conn.WriteLine(protocol.Err(err.Error()))
		return
	}
	defer s.table.Leave(seat, conn)

	for {
		line, err := conn.ReadLine()
		if err != nil {
			log.Debug().Err(err).Int("seat", seat.Index).Msg("connection closed")
			return
		}
		s.handleLine(seat, line)
	}
}

func (s *Server) handleLine(seat *Seat, line string) {
	req, err := protocol.ParseRequest(line)
	if errors.Is(err, protocol.ErrEmptyLine) {
		return
	}
	if err != nil {
		log.Debug().Err(err).Int("seat", seat.Index).Str("line", line).Msg("invalid command")
		seat.Send(protocol.Err(apperrors.ErrInvalidCommand.Message))
		return
	}

	if err := s.dispatch(seat, req); err != nil {
		log.Debug().Err(err).Int("seat", seat.Index).Str("cmd", req.String()).Msg("command rejected")
		seat.Send(protocol.Err(errorReason(err)))
	}
}

func (s *Server) dispatch(seat *Seat, req protocol.Request) error {
	switch req.Cmd {
	case protocol.CmdTakeCards:
		return s.table.TakeCards(seat)
	case protocol.CmdPlay:
		if err := s.table.requireTurn(seat); err != nil {
			return err
		}
		return s.table.Play(seat, req.Args)
	case protocol.CmdPass:
		if err := s.table.requireTurn(seat); err != nil {
			return err
		}
		return s.table.Pass(seat)
	case protocol.CmdStage:
		return s.table.Stage(seat, req.Args[0], req.Args[1])
	case protocol.CmdUnstage:
		return s.table.Unstage(seat, req.Args[0], req.Args[1])
	case protocol.CmdHand:
		s.table.Hand(seat)
	case protocol.CmdScore:
		s.table.Score(seat)
	case protocol.CmdLeaderboard:
		return s.leaderboard(seat)
	case protocol.CmdHistory:
		return s.history(seat)
	default:
		return apperrors.ErrInvalidCommand
	}
	return nil
}

// leaderboard reads the store outside the table lock.
func (s *Server) leaderboard(seat *Seat) error {
	if s.store == nil {
		seat.Send(protocol.OK(""))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	entries, err := s.store.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to load leaderboard")
		return err
	}

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Name + "=" + strconv.Itoa(e.Wins)
	}
	seat.Send(protocol.OK(strings.Join(parts, ",")))
	return nil
}

// history replies with the scored rounds of the current game as
// round=team1:team2 pairs, oldest first.
func (s *Server) history(seat *Seat) error {
	if s.store == nil {
		seat.Send(protocol.OK(""))
		return nil
	}

	gameID := s.table.GameID()
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	rounds, err := s.store.LoadRounds(ctx, gameID)
	if err != nil {
		log.Error().Err(err).Str("game", gameID).Msg("failed to load rounds")
		return err
	}

	parts := make([]string, len(rounds))
	for i, r := range rounds {
		parts[i] = fmt.Sprintf("%d=%d:%d", r.Round, r.Team1, r.Team2)
	}
	seat.Send(protocol.OK(strings.Join(parts, ",")))
	return nil
}

func errorReason(err error) string {
	var ge *apperrors.GameError
	if errors.As(err, &ge) {
		return ge.Message
	}
	return protocol.ErrorMessages[protocol.ErrCodeUnknown]
}
