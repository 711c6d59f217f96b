package server

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/tichu/internal/apperrors"
	"github.com/palemoky/tichu/internal/game/round"
	"github.com/palemoky/tichu/internal/protocol"
	"github.com/palemoky/tichu/internal/server/storage"
)

var ErrTableFull = errors.New("table full")

// Table is the one game the server hosts. Every state transition holds mu
// from validation to the last push it causes; pushes take each seat's send
// lock only while writing, always after mu.
type Table struct {
	mu    sync.RWMutex
	round *round.Round
	seats [round.Players]*Seat

	gameID  string
	roundNo int
	rec     *recorder // nil without persistence
}

func NewTable(dealer round.Dealer, rec *recorder) *Table {
	t := &Table{round: round.New(dealer), rec: rec}
	for i := range t.seats {
		t.seats[i] = newSeat(i)
	}
	return t
}

// Join seats conn at the first free place and answers "ok:<seat>". Once all
// four seats are taken for the first time the game starts. A connection
// taking over a seat mid-game keeps the seat's hand.
func (t *Table) Join(name string, conn Conn) (*Seat, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var seat *Seat
	for _, s := range t.seats {
		if !s.occupied() {
			seat = s
			break
		}
	}
	if seat == nil {
		return nil, ErrTableFull
	}

	seat.attach(name, conn)
	seat.Send(protocol.OK(strconv.Itoa(seat.Index)))
	// 告知新玩家已就座的其他玩家
	for _, other := range t.seats {
		if other != seat && other.occupied() {
			seat.Send(protocol.Push(protocol.TopicJoined, fmt.Sprintf("%d:%s", other.Index, other.Name())))
		}
	}
	t.broadcastExcept(seat, protocol.Push(protocol.TopicJoined, fmt.Sprintf("%d:%s", seat.Index, name)))
	log.Info().Int("seat", seat.Index).Str("user", name).Str("conn", seat.connID).Str("addr", conn.RemoteAddr()).Msg("player joined")

	switch {
	case t.round.State() == round.StateWaiting:
		if t.full() {
			t.startGame()
		}
	case t.round.CurrentPlayer() == seat.Index:
		seat.Send(protocol.Push(protocol.TopicYourTurn, ""))
	}
	return seat, nil
}

// Leave frees the seat if conn still holds it. The round is not ended.
func (t *Table) Leave(seat *Seat, conn Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !seat.detach(conn) {
		return
	}
	t.broadcast(protocol.Push(protocol.TopicLeft, strconv.Itoa(seat.Index)))
	log.Info().Int("seat", seat.Index).Str("user", seat.Name()).Msg("player left")
}

func (t *Table) full() bool {
	for _, s := range t.seats {
		if !s.occupied() {
			return false
		}
	}
	return true
}

func (t *Table) broadcast(line string) {
	for _, s := range t.seats {
		s.Send(line)
	}
}

func (t *Table) broadcastExcept(skip *Seat, line string) {
	for _, s := range t.seats {
		if s != skip {
			s.Send(line)
		}
	}
}

// requireTurn rejects a play or pass from anyone but the current player.
// Callers re-check under the write lock before mutating.
func (t *Table) requireTurn(seat *Seat) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.checkTurn(seat)
}

func (t *Table) checkTurn(seat *Seat) error {
	if t.round.State() == round.StateWaiting {
		return apperrors.ErrNotStarted
	}
	if t.round.CurrentPlayer() != seat.Index {
		return apperrors.ErrNotYourTurn
	}
	return nil
}

func (t *Table) startGame() {
	t.gameID = uuid.NewString()
	t.roundNo = 1
	t.round.NewGame()
	log.Info().Str("game", t.gameID).Msg("game started")
	t.dealt()
}

// dealt announces fresh hands. Old hands are dropped so nothing from the
// previous round can be played before takecards.
func (t *Table) dealt() {
	for _, s := range t.seats {
		s.player.TakeHand(nil)
	}
	t.broadcast(protocol.Push(protocol.TopicClearCards, ""))
	t.pushTurn()
}

func (t *Table) pushTurn() {
	t.seats[t.round.CurrentPlayer()].Send(protocol.Push(protocol.TopicYourTurn, ""))
}

// advance moves the turn on and announces a cleared table.
func (t *Table) advance() {
	before := t.round.CurrentTrick()
	status := t.round.Next()

	switch {
	case status == round.TrickWin:
		taker := t.round.LastTaker()
		log.Info().Str("game", t.gameID).Int("seat", taker).Int("points", t.round.PlayerPoints(taker)).Msg("trick won")
		t.broadcast(protocol.Push(protocol.TopicClearTable, strconv.Itoa(taker)))
	case before != nil && t.round.CurrentTrick() == nil:
		// the dog hands the lead over without anyone collecting
		t.broadcast(protocol.Push(protocol.TopicClearTable, strconv.Itoa(t.round.CurrentPlayer())))
	}
	t.pushTurn()
}

// endRound reports a scored round and deals the next one.
func (t *Table) endRound(status round.Status) {
	score, _ := t.round.LastScore()
	total := t.round.CurrentScore()

	t.record(recordJob{round: &storage.RoundRecord{
		GameID:   t.gameID,
		Round:    t.roundNo,
		Players:  t.names(),
		Finished: t.round.Finished(),
		Team1:    score[0],
		Team2:    score[1],
		Total1:   total[0],
		Total2:   total[1],
		At:       time.Now().Unix(),
	}})
	t.broadcast(protocol.Push(protocol.TopicRoundOver, fmt.Sprintf("%d,%d", score[0], score[1])))
	log.Info().Str("game", t.gameID).Int("round", t.roundNo).Ints("score", score[:]).Ints("total", total[:]).Msg("round scored")

	if status == round.Team1Wins || status == round.Team2Wins {
		team := 0
		if status == round.Team2Wins {
			team = 1
		}
		names := t.names()
		t.record(recordJob{winners: []string{names[team], names[team+2]}})
		t.broadcast(protocol.Push(protocol.TopicGameOver, strconv.Itoa(team+1)))
		log.Info().Str("game", t.gameID).Int("team", team+1).Msg("game over")
		t.startGame()
		return
	}

	t.roundNo++
	t.round.ShuffleAndDeal()
	t.dealt()
}

func (t *Table) names() [round.Players]string {
	var names [round.Players]string
	for i, s := range t.seats {
		names[i] = s.Name()
	}
	return names
}

func (t *Table) record(job recordJob) {
	if t.rec != nil {
		t.rec.enqueue(job)
	}
}
