package protocol

import (
	"errors"
	"strconv"
	"strings"
)

// Command is the first word of a client line.
type Command string

// 客户端 → 服务端 命令
const (
	CmdTakeCards Command = "takecards" // 领取本局手牌
	CmdPlay      Command = "play"      // 出牌，无参数时打出暂存区
	CmdPass      Command = "pass"      // 不出
	CmdStage     Command = "stage"     // stage <id> <pos>
	CmdUnstage   Command = "unstage"   // unstage <pos> <handpos>

	CmdHand        Command = "hand"
	CmdScore       Command = "score"
	CmdLeaderboard Command = "leaderboard"
	CmdHistory     Command = "history" // 本场每局得分
)

// Topic names an unsolicited server push.
type Topic string

// 服务端 → 客户端 推送
const (
	TopicYourTurn   Topic = "yourturn"
	TopicClearTable Topic = "cleartable" // payload: seat that collected the table
	TopicClearCards Topic = "clearcards" // new hands are ready to take
	TopicNewTrick   Topic = "newtrick"   // payload: <seat>:<cards>
	TopicPass       Topic = "pass"
	TopicFinished   Topic = "finished"
	TopicRoundOver  Topic = "roundover" // payload: <team1>,<team2>
	TopicGameOver   Topic = "gameover"  // payload: 1 or 2
	TopicJoined     Topic = "joined"    // payload: <seat>:<user>
	TopicLeft       Topic = "left"
)

const (
	prefixOK   = "ok:"
	prefixErr  = "err:"
	prefixPush = "push:"
)

var (
	ErrEmptyLine      = errors.New("empty line")
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("bad arguments")
)

// Request is a parsed client command.
type Request struct {
	Cmd  Command
	Args []int
}

// arity is the exact argument count of each command; -1 accepts any.
var arity = map[Command]int{
	CmdTakeCards:   0,
	CmdPlay:        -1,
	CmdPass:        0,
	CmdStage:       2,
	CmdUnstage:     2,
	CmdHand:        0,
	CmdScore:       0,
	CmdLeaderboard: 0,
	CmdHistory:     0,
}

// ParseRequest parses one command line. Arguments are non-negative integers.
func ParseRequest(line string) (Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Request{}, ErrEmptyLine
	}

	cmd := Command(strings.ToLower(fields[0]))
	n, ok := arity[cmd]
	if !ok {
		return Request{}, ErrUnknownCommand
	}
	if n >= 0 && len(fields)-1 != n {
		return Request{}, ErrBadArguments
	}

	req := Request{Cmd: cmd}
	for _, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return Request{}, ErrBadArguments
		}
		req.Args = append(req.Args, v)
	}
	return req, nil
}

// String renders the request back into its line form.
func (r Request) String() string {
	var b strings.Builder
	b.WriteString(string(r.Cmd))
	for _, a := range r.Args {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(a))
	}
	return b.String()
}

func OK(payload string) string { return prefixOK + payload }

func Err(reason string) string { return prefixErr + reason }

func Push(topic Topic, payload string) string {
	return prefixPush + string(topic) + ":" + payload
}

// Kind classifies a server line.
type Kind int

const (
	KindUnknown Kind = iota
	KindOK
	KindErr
	KindPush
)

// Response is a parsed server line, as seen by a client.
type Response struct {
	Kind    Kind
	Topic   Topic // pushes only
	Payload string
}

// ParseResponse splits a server line into its kind, topic and payload.
func ParseResponse(line string) Response {
	line = strings.TrimRight(line, "\r\n")
	switch {
	case strings.HasPrefix(line, prefixOK):
		return Response{Kind: KindOK, Payload: line[len(prefixOK):]}
	case strings.HasPrefix(line, prefixErr):
		return Response{Kind: KindErr, Payload: line[len(prefixErr):]}
	case strings.HasPrefix(line, prefixPush):
		topic, payload, _ := strings.Cut(line[len(prefixPush):], ":")
		return Response{Kind: KindPush, Topic: Topic(topic), Payload: payload}
	}
	return Response{Kind: KindUnknown, Payload: line}
}
