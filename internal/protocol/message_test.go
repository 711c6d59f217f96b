package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line    string
		want    Request
		wantErr error
	}{
		{line: "takecards", want: Request{Cmd: CmdTakeCards}},
		{line: "  PASS ", want: Request{Cmd: CmdPass}},
		{line: "play 3 7 12", want: Request{Cmd: CmdPlay, Args: []int{3, 7, 12}}},
		{line: "play", want: Request{Cmd: CmdPlay}},
		{line: "stage 4 0", want: Request{Cmd: CmdStage, Args: []int{4, 0}}},
		{line: "unstage 1 2", want: Request{Cmd: CmdUnstage, Args: []int{1, 2}}},
		{line: "leaderboard", want: Request{Cmd: CmdLeaderboard}},
		{line: "history", want: Request{Cmd: CmdHistory}},
		{line: "", wantErr: ErrEmptyLine},
		{line: "bid 1", wantErr: ErrUnknownCommand},
		{line: "stage 4", wantErr: ErrBadArguments},
		{line: "pass now", wantErr: ErrBadArguments},
		{line: "play 1 x", wantErr: ErrBadArguments},
		{line: "play -1", wantErr: ErrBadArguments},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseRequest(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "play 1 2", Request{Cmd: CmdPlay, Args: []int{1, 2}}.String())
	assert.Equal(t, "pass", Request{Cmd: CmdPass}.String())
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ok:", OK(""))
	assert.Equal(t, "err:too low", Err("too low"))
	assert.Equal(t, "push:newtrick:2:Qred Qblue", Push(TopicNewTrick, "2:Qred Qblue"))
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Response{Kind: KindOK, Payload: "0=Qred,1=dog"}, ParseResponse("ok:0=Qred,1=dog\n"))
	assert.Equal(t, Response{Kind: KindErr, Payload: "not your turn"}, ParseResponse("err:not your turn"))
	assert.Equal(t,
		Response{Kind: KindPush, Topic: TopicNewTrick, Payload: "1:Kred"},
		ParseResponse("push:newtrick:1:Kred"),
	)
	assert.Equal(t, Response{Kind: KindPush, Topic: TopicYourTurn}, ParseResponse("push:yourturn:"))
	assert.Equal(t, KindUnknown, ParseResponse("hello").Kind)
}

func TestErrorMessagesCoverCodes(t *testing.T) {
	t.Parallel()

	for _, code := range []int{
		ErrCodeUnknown, ErrCodeInvalidCommand, ErrCodeBadIndex, ErrCodeNotStarted, ErrCodeNotYourTurn,
		ErrCodeInvalidCard, ErrCodeNotValid, ErrCodeTooLow, ErrCodeIncompatible, ErrCodeMustPlay, ErrCodeNoHand,
	} {
		assert.NotEmpty(t, ErrorMessages[code], "code %d", code)
	}
}
