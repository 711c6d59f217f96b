package apperrors

import (
	"github.com/palemoky/tichu/internal/protocol"
)

// GameError is a recoverable command-level rejection. It is reported to the
// offending client only and never mutates state.
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

func newError(code int) *GameError {
	return &GameError{Code: code, Message: protocol.ErrorMessages[code]}
}

// 预定义错误
var (
	ErrInvalidCommand = newError(protocol.ErrCodeInvalidCommand)
	ErrBadIndex       = newError(protocol.ErrCodeBadIndex)
	ErrNotStarted     = newError(protocol.ErrCodeNotStarted)
	ErrNotYourTurn    = newError(protocol.ErrCodeNotYourTurn)
	ErrInvalidCard    = newError(protocol.ErrCodeInvalidCard)
	ErrNotValid       = newError(protocol.ErrCodeNotValid)
	ErrTooLow         = newError(protocol.ErrCodeTooLow)
	ErrIncompatible   = newError(protocol.ErrCodeIncompatible)
	ErrMustPlay       = newError(protocol.ErrCodeMustPlay)
	ErrNoHand         = newError(protocol.ErrCodeNoHand)
)
