package server

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/tichu/internal/game/player"
)

// Seat is one of the four places at the table. The player, and with it the
// hand, stays with the seat when its connection drops so that a new
// connection can take over.
type Seat struct {
	Index int

	// guarded by the table lock
	player *player.Player
	connID string

	sendMu sync.Mutex // guards conn
	conn   Conn
}

func newSeat(index int) *Seat {
	return &Seat{Index: index, player: player.New("")}
}

// Name is the username of the current or last occupant.
func (s *Seat) Name() string {
	return s.player.Name
}

func (s *Seat) occupied() bool {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	return s.conn != nil
}

func (s *Seat) attach(name string, conn Conn) {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	s.conn = conn
	s.connID = uuid.NewString()
	s.player.Name = name
}

// detach empties the seat if conn still owns it.
func (s *Seat) detach(conn Conn) bool {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.conn != conn {
		return false
	}
	s.conn = nil
	return true
}

// Send writes one line to the occupant. A failed write is logged; the
// worker reading from the same connection notices the broken transport.
func (s *Seat) Send(line string) {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if s.conn == nil {
		return
	}
	if err := s.conn.WriteLine(line); err != nil {
		log.Error().Err(err).Int("seat", s.Index).Str("conn", s.connID).Msg("write failed")
	}
}
