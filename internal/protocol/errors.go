package protocol

// 错误码
const (
	ErrCodeUnknown        = 1000
	ErrCodeInvalidCommand = 1001
	ErrCodeBadIndex       = 1002
	ErrCodeNotStarted     = 3001
	ErrCodeNotYourTurn    = 3002
	ErrCodeInvalidCard    = 3003
	ErrCodeNotValid       = 3004
	ErrCodeTooLow         = 3005
	ErrCodeIncompatible   = 3006
	ErrCodeMustPlay       = 3007
	ErrCodeNoHand         = 3008
)

// ErrorMessages maps codes to the reason sent after "err:".
var ErrorMessages = map[int]string{
	ErrCodeUnknown:        "unknown error",
	ErrCodeInvalidCommand: "invalid command",
	ErrCodeBadIndex:       "bad index",
	ErrCodeNotStarted:     "game not started",
	ErrCodeNotYourTurn:    "not your turn",
	ErrCodeInvalidCard:    "invalid card",
	ErrCodeNotValid:       "not a valid combination",
	ErrCodeTooLow:         "too low",
	ErrCodeIncompatible:   "incompatible combination",
	ErrCodeMustPlay:       "you must play",
	ErrCodeNoHand:         "no hand to take",
}
