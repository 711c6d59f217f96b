package client

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/palemoky/tichu/internal/game/card"
	"github.com/palemoky/tichu/internal/game/round"
	"github.com/palemoky/tichu/internal/protocol"
)

// cmdJoin stands for the username line, whose reply carries our seat.
const cmdJoin protocol.Command = "join"

const maxEvents = 8

// GameState mirrors what one player knows about the table. Replies are
// matched to requests in send order, so every request must go through Sent.
type GameState struct {
	Name  string
	Seat  int
	Names [round.Players]string

	// Player data
	Hand   []card.Entry
	Staged []card.Entry
	Shape  string // combination formed by the staged cards

	// Game progress
	Started   bool
	MyTurn    bool
	Table     []card.Card
	TableSeat int
	Finished  []int

	// Scores
	LastRound   round.Score
	Totals      round.Score
	Winner      int // team of the last finished game, 0 before any
	Leaderboard []string
	History     []string // round=team1:team2 of the current game

	Events []string
	Error  string

	// Features
	CardCounter *CardCounter

	pending []protocol.Request
}

// NewGameState creates the state of a player who just sent name.
func NewGameState(name string) *GameState {
	return &GameState{
		Name:        name,
		Seat:        -1,
		TableSeat:   -1,
		CardCounter: NewCardCounter(),
		pending:     []protocol.Request{{Cmd: cmdJoin}},
	}
}

// Sent records a request whose reply is still due.
func (gs *GameState) Sent(req protocol.Request) {
	gs.pending = append(gs.pending, req)
	gs.Error = ""
}

// Pending is the number of requests waiting for a reply.
func (gs *GameState) Pending() int {
	return len(gs.pending)
}

// Apply folds one server line into the state. It returns the requests the
// client should send in reaction, such as taking a freshly dealt hand.
func (gs *GameState) Apply(resp protocol.Response) []protocol.Request {
	switch resp.Kind {
	case protocol.KindOK, protocol.KindErr:
		if len(gs.pending) == 0 {
			log.Debug().Str("payload", resp.Payload).Msg("unexpected reply")
			return nil
		}
		req := gs.pending[0]
		gs.pending = gs.pending[1:]
		if resp.Kind == protocol.KindErr {
			gs.Error = resp.Payload
			gs.event("%s: %s", req.Cmd, resp.Payload)
			return nil
		}
		gs.applyReply(req, resp.Payload)
	case protocol.KindPush:
		return gs.applyPush(resp.Topic, resp.Payload)
	default:
		log.Debug().Str("line", resp.Payload).Msg("unknown server line")
	}
	return nil
}

func (gs *GameState) applyReply(req protocol.Request, payload string) {
	switch req.Cmd {
	case cmdJoin:
		if seat, err := strconv.Atoi(payload); err == nil && validSeat(seat) {
			gs.Seat = seat
			gs.Names[seat] = gs.Name
			gs.event("joined as seat %d", seat)
		}
	case protocol.CmdTakeCards:
		gs.Staged, gs.Shape = nil, ""
		gs.setHand(payload)
	case protocol.CmdHand:
		gs.setHand(payload)
	case protocol.CmdPlay:
		gs.removePlayed(req.Args)
		gs.MyTurn = false
	case protocol.CmdPass:
		gs.MyTurn = false
	case protocol.CmdStage:
		gs.stage(req.Args[0], req.Args[1])
		gs.Shape = payload
	case protocol.CmdUnstage:
		gs.unstage(req.Args[0], req.Args[1])
		gs.Shape = payload
	case protocol.CmdScore:
		if s, ok := parseScore(payload); ok {
			gs.Totals = s
		}
	case protocol.CmdLeaderboard:
		gs.Leaderboard = nil
		if payload != "" {
			gs.Leaderboard = strings.Split(payload, ",")
		}
	case protocol.CmdHistory:
		gs.History = nil
		if payload != "" {
			gs.History = strings.Split(payload, ",")
		}
	}
}

func (gs *GameState) applyPush(topic protocol.Topic, payload string) []protocol.Request {
	switch topic {
	case protocol.TopicYourTurn:
		gs.Started = true
		gs.MyTurn = true
	case protocol.TopicClearTable:
		gs.Table, gs.TableSeat = nil, -1
		if seat, err := strconv.Atoi(payload); err == nil {
			gs.event("%s leads", gs.PlayerName(seat))
		}
	case protocol.TopicClearCards:
		gs.Started = true
		gs.MyTurn = false
		gs.Hand, gs.Staged, gs.Shape = nil, nil, ""
		gs.Table, gs.TableSeat = nil, -1
		gs.Finished = nil
		gs.CardCounter.Reset()
		gs.event("new hands dealt")
		return []protocol.Request{{Cmd: protocol.CmdTakeCards}}
	case protocol.TopicNewTrick:
		seatStr, cardsStr, _ := strings.Cut(payload, ":")
		seat, err := strconv.Atoi(seatStr)
		if err != nil {
			return nil
		}
		cards, err := card.ParseCards(cardsStr)
		if err != nil {
			log.Warn().Err(err).Str("payload", payload).Msg("bad trick push")
			return nil
		}
		gs.Table, gs.TableSeat = cards, seat
		gs.CardCounter.DeductCards(cards)
		if seat == gs.Seat {
			gs.MyTurn = false
		}
		gs.event("%s plays %s", gs.PlayerName(seat), cardsStr)
	case protocol.TopicPass:
		if seat, err := strconv.Atoi(payload); err == nil {
			gs.event("%s passes", gs.PlayerName(seat))
		}
	case protocol.TopicFinished:
		if seat, err := strconv.Atoi(payload); err == nil {
			gs.Finished = append(gs.Finished, seat)
			gs.event("%s is out", gs.PlayerName(seat))
		}
	case protocol.TopicRoundOver:
		if s, ok := parseScore(payload); ok {
			gs.LastRound = s
			gs.Totals[0] += s[0]
			gs.Totals[1] += s[1]
			gs.event("round scored %d:%d", s[0], s[1])
		}
	case protocol.TopicGameOver:
		if team, err := strconv.Atoi(payload); err == nil {
			gs.Winner = team
			gs.Totals = round.Score{}
			gs.event("team %d wins the game", team)
		}
	case protocol.TopicJoined:
		seatStr, user, _ := strings.Cut(payload, ":")
		if seat, err := strconv.Atoi(seatStr); err == nil && validSeat(seat) {
			gs.Names[seat] = user
			gs.event("%s sits at seat %d", user, seat)
		}
	case protocol.TopicLeft:
		if seat, err := strconv.Atoi(payload); err == nil && validSeat(seat) {
			gs.event("%s left", gs.PlayerName(seat))
			gs.Names[seat] = ""
		}
	}
	return nil
}

// PlayerName names a seat for display.
func (gs *GameState) PlayerName(seat int) string {
	if validSeat(seat) && gs.Names[seat] != "" {
		return gs.Names[seat]
	}
	return fmt.Sprintf("seat %d", seat)
}

// IsFinished reports whether seat has emptied its hand this round.
func (gs *GameState) IsFinished(seat int) bool {
	return slices.Contains(gs.Finished, seat)
}

func (gs *GameState) setHand(payload string) {
	hand, err := card.ParseHand(payload)
	if err != nil {
		log.Warn().Err(err).Msg("bad hand listing")
		return
	}
	gs.Hand = hand
}

func (gs *GameState) removePlayed(ids []int) {
	if len(ids) == 0 {
		gs.Staged, gs.Shape = nil, ""
		return
	}
	played := func(e card.Entry) bool { return slices.Contains(ids, e.ID) }
	gs.Hand = slices.DeleteFunc(gs.Hand, played)
	gs.Staged = slices.DeleteFunc(gs.Staged, played)
	if len(gs.Staged) == 0 {
		gs.Shape = ""
	}
}

func (gs *GameState) stage(id, pos int) {
	i := slices.IndexFunc(gs.Hand, func(e card.Entry) bool { return e.ID == id })
	if i < 0 {
		return
	}
	e := gs.Hand[i]
	gs.Hand = slices.Delete(gs.Hand, i, i+1)
	gs.Staged = slices.Insert(gs.Staged, clamp(pos, len(gs.Staged)), e)
}

func (gs *GameState) unstage(pos, handPos int) {
	if pos < 0 || pos >= len(gs.Staged) {
		return
	}
	e := gs.Staged[pos]
	gs.Staged = slices.Delete(gs.Staged, pos, pos+1)
	gs.Hand = slices.Insert(gs.Hand, clamp(handPos, len(gs.Hand)), e)
}

func (gs *GameState) event(format string, args ...any) {
	gs.Events = append(gs.Events, fmt.Sprintf(format, args...))
	if len(gs.Events) > maxEvents {
		gs.Events = gs.Events[len(gs.Events)-maxEvents:]
	}
}

func parseScore(s string) (round.Score, bool) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return round.Score{}, false
	}
	x, err1 := strconv.Atoi(a)
	y, err2 := strconv.Atoi(b)
	if err1 != nil || err2 != nil {
		return round.Score{}, false
	}
	return round.Score{x, y}, true
}

func validSeat(seat int) bool {
	return seat >= 0 && seat < round.Players
}

func clamp(i, n int) int {
	return max(0, min(i, n))
}
