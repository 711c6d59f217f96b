package round

import (
	"github.com/palemoky/tichu/internal/game/card"
	"github.com/palemoky/tichu/internal/game/rule"
)

const (
	// Players at the table. Seats 0 and 2 form team 1, seats 1 and 3 team 2.
	Players = 4
	// WinningScore is the cumulative team score a game must exceed.
	WinningScore = 999
	// RoundPoints is the point value of the whole deck.
	RoundPoints = 100
	// ShutoutBonus is awarded when both players of a team finish first.
	ShutoutBonus = 200
)

// Status is reported by Next and MarkFinished.
type Status int

const (
	Continue    Status = iota
	TrickWin           // the table was collected, the round goes on
	FinishRound        // the round was scored
	Team1Wins
	Team2Wins
)

var statusNames = map[Status]string{
	Continue:    "continue",
	TrickWin:    "trickwin",
	FinishRound: "finishround",
	Team1Wins:   "team1wins",
	Team2Wins:   "team2wins",
}

func (s Status) String() string {
	return statusNames[s]
}

// State 回合状态
type State int

const (
	StateWaiting State = iota // no hands dealt yet
	StateDealt
	StateInPlay
	StateRoundFinished
	StateGameFinished
)

// Score is one round's (team 1, team 2) point pair.
type Score [2]int

// Team returns the team index (0 or 1) of a seat.
func Team(seat int) int {
	return seat % 2
}

// Dealer is the deck collaborator.
type Dealer interface {
	Shuffle()
	Deal() [4][]card.Card
}

// DeckDealer deals from a fresh deck each time.
type DeckDealer struct {
	deck card.Deck
}

func (d *DeckDealer) Shuffle() {
	d.deck = card.NewDeck()
	d.deck.Shuffle()
}

func (d *DeckDealer) Deal() [4][]card.Card {
	if d.deck == nil {
		d.Shuffle()
	}
	return d.deck.Deal()
}

// Round owns the state shared by the four players of one game. It is not
// safe for concurrent use; callers serialize access.
type Round struct {
	dealer Dealer
	state  State

	hands         [Players][]card.Card // dealt but not yet taken
	currentPlayer int
	playerPoints  [Players]int
	finished      []int
	tricks        []*rule.Trick
	passes        int
	scores        []Score

	dogLead   bool
	lastTaker int
}

// New returns a round in the waiting state that deals with dealer.
func New(dealer Dealer) *Round {
	if dealer == nil {
		dealer = &DeckDealer{}
	}
	return &Round{dealer: dealer, lastTaker: -1}
}

// ShuffleAndDeal deals four new hands and resets the per-round state. The
// holder of the One leads.
func (r *Round) ShuffleAndDeal() {
	r.dealer.Shuffle()
	hands := r.dealer.Deal()

	r.currentPlayer = 0
	for i, hand := range hands {
		r.hands[i] = hand
		for _, c := range hand {
			if c.Is(card.One) {
				r.currentPlayer = i
			}
		}
	}
	r.playerPoints = [Players]int{}
	r.finished = nil
	r.tricks = nil
	r.passes = 0
	r.dogLead = false
	r.lastTaker = -1
	r.state = StateDealt
}

// NewGame clears the score sheet and deals the first round.
func (r *Round) NewGame() {
	r.scores = nil
	r.ShuffleAndDeal()
}

// TakeHand returns the pending hand of seat i once; later calls return nil.
func (r *Round) TakeHand(i int) []card.Card {
	if i < 0 || i >= Players {
		return nil
	}
	hand := r.hands[i]
	r.hands[i] = nil
	return hand
}

// Pass records that the current player passed. Turn advancement happens in
// Next.
func (r *Round) Pass() {
	r.passes++
	r.dogLead = false
	r.state = StateInPlay
}

// AddTrick puts a played trick on the table. The caller has already checked
// that it tops the previous one.
func (r *Round) AddTrick(t *rule.Trick) {
	r.passes = 0
	r.tricks = append(r.tricks, t)
	r.dogLead = len(r.tricks) == 1 && t.IsSingle(card.Dog)
	r.state = StateInPlay
}

// Next advances the turn. After the Dog is led the turn goes to the partner
// of the player who led it and the table is cleared. Finished players are
// skipped as automatic passes, and after three passes in a row the current
// player collects every trick on the table.
func (r *Round) Next() Status {
	if r.dogLead {
		r.currentPlayer = (r.currentPlayer + 2) % Players
		r.tricks = nil
		r.passes = 0
		r.dogLead = false
	} else {
		r.currentPlayer = (r.currentPlayer + 1) % Players
	}

	status := Continue
	for r.isFinished(r.currentPlayer) || r.passes >= 3 {
		if r.passes >= 3 {
			for _, t := range r.tricks {
				r.playerPoints[r.currentPlayer] += t.Points()
			}
			r.tricks = nil
			r.passes = 0
			r.lastTaker = r.currentPlayer
			status = TrickWin
		}
		if r.isFinished(r.currentPlayer) {
			r.passes++
			r.currentPlayer = (r.currentPlayer + 1) % Players
		}
	}
	return status
}

func (r *Round) isFinished(seat int) bool {
	for _, f := range r.finished {
		if f == seat {
			return true
		}
	}
	return false
}

// MarkFinished records that seat emptied its hand and scores the round once
// it is decided.
//
// When both players of one team finish first the team scores a flat
// ShutoutBonus. Otherwise the round is scored when the third player
// finishes: the first finisher's team also takes the points won by the last
// player, and the cards still in the last player's hand (whatever is missing
// from RoundPoints) go to the opposing team.
func (r *Round) MarkFinished(seat int) Status {
	if r.isFinished(seat) {
		return Continue
	}
	r.finished = append(r.finished, seat)

	var score Score
	switch {
	case len(r.finished) == 2 && Team(r.finished[0]) == Team(r.finished[1]):
		score[Team(r.finished[0])] = ShutoutBonus
	case len(r.finished) == 3:
		last := 6 - (r.finished[0] + r.finished[1] + r.finished[2])
		first := r.finished[0]
		score[Team(first)] += r.playerPoints[first] + r.playerPoints[last]
		score[Team(r.finished[1])] += r.playerPoints[r.finished[1]]
		score[Team(r.finished[2])] += r.playerPoints[r.finished[2]]
		score[Team(last+1)] += RoundPoints - (score[0] + score[1])
	default:
		return Continue
	}

	r.scores = append(r.scores, score)
	r.playerPoints = [Players]int{}
	r.tricks = nil
	r.passes = 0
	r.state = StateRoundFinished

	total := r.CurrentScore()
	switch {
	case total[0] > WinningScore && total[0] > total[1]:
		r.state = StateGameFinished
		return Team1Wins
	case total[1] > WinningScore && total[1] > total[0]:
		r.state = StateGameFinished
		return Team2Wins
	}
	return FinishRound
}

// CurrentTrick is the trick to beat, or nil when the table is empty.
func (r *Round) CurrentTrick() *rule.Trick {
	if len(r.tricks) == 0 {
		return nil
	}
	return r.tricks[len(r.tricks)-1]
}

// CurrentScore sums every recorded round per team.
func (r *Round) CurrentScore() Score {
	var total Score
	for _, s := range r.scores {
		total[0] += s[0]
		total[1] += s[1]
	}
	return total
}

// Scores returns a copy of the per-round score sheet.
func (r *Round) Scores() []Score {
	return append([]Score(nil), r.scores...)
}

// LastScore is the pair recorded for the most recent round.
func (r *Round) LastScore() (Score, bool) {
	if len(r.scores) == 0 {
		return Score{}, false
	}
	return r.scores[len(r.scores)-1], true
}

func (r *Round) CurrentPlayer() int { return r.currentPlayer }

func (r *Round) State() State { return r.state }

// Finished lists the seats that emptied their hands, in order.
func (r *Round) Finished() []int { return append([]int(nil), r.finished...) }

// PlayerPoints is the points seat has collected this round.
func (r *Round) PlayerPoints(seat int) int { return r.playerPoints[seat] }

// LastTaker is the seat that collected the table most recently, or -1.
func (r *Round) LastTaker() int { return r.lastTaker }

func (r *Round) Passes() int { return r.passes }
