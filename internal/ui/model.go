// Package ui is the terminal client: a bubbletea model over one line protocol
// connection.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/tichu/internal/client"
	"github.com/palemoky/tichu/internal/protocol"
)

// Phase 客户端阶段
type Phase int

const (
	PhaseConnecting Phase = iota
	PhasePlaying
	PhaseDisconnected
)

// Session is the server connection the model drives.
type Session interface {
	Connect() error
	Send(req protocol.Request) error
	Receive() (protocol.Response, error)
	Close() error
}

// --- Tea Messages ---

// ServerMessage wraps one server line for tea.Msg.
type ServerMessage struct {
	Resp protocol.Response
}

// ConnectedMsg indicates successful connection.
type ConnectedMsg struct{}

// ConnectionErrorMsg indicates the connection failed or dropped.
type ConnectionErrorMsg struct {
	Err error
}

// Model is the root bubbletea model of the client.
type Model struct {
	session Session
	state   *client.GameState
	phase   Phase
	err     string

	showCounter bool
	showHelp    bool

	input  textinput.Model
	width  int
	height int
}

// New returns a model that plays as name over session.
func New(session Session, name string) *Model {
	ti := textinput.New()
	ti.Placeholder = "play 3 7 | pass | stage 3 0 | /help"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	return &Model{
		session: session,
		state:   client.NewGameState(name),
		phase:   PhaseConnecting,
		input:   ti,
	}
}

// State exposes the mirrored game state.
func (m *Model) State() *client.GameState { return m.state }

func (m *Model) Phase() Phase { return m.phase }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.connect(), textinput.Blink)
}

// connect 连接服务器
func (m *Model) connect() tea.Cmd {
	return func() tea.Msg {
		if err := m.session.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

// listen 监听服务器消息
func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		resp, err := m.session.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Resp: resp}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, m.quit()
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			return m, m.submit(line)
		}

	case ConnectedMsg:
		m.phase = PhasePlaying
		return m, m.listen()

	case ConnectionErrorMsg:
		m.phase = PhaseDisconnected
		m.err = msg.Err.Error()
		log.Warn().Err(msg.Err).Msg("connection lost")
		return m, nil

	case ServerMessage:
		if msg.Resp.Kind == protocol.KindErr {
			m.err = ""
		}
		for _, req := range m.state.Apply(msg.Resp) {
			m.send(req)
		}
		if m.phase == PhaseDisconnected {
			return m, nil
		}
		return m, m.listen()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles one line typed by the player. Lines starting with a slash
// are local commands; everything else goes to the server.
func (m *Model) submit(line string) tea.Cmd {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	m.err = ""

	switch strings.ToLower(line) {
	case "/quit", "/q":
		return m.quit()
	case "/help", "/h":
		m.showHelp = !m.showHelp
		return nil
	case "/counter", "/c":
		m.showCounter = !m.showCounter
		return nil
	}

	if m.phase != PhasePlaying {
		m.err = "not connected"
		return nil
	}
	req, err := protocol.ParseRequest(line)
	if err != nil {
		m.err = err.Error() + ": " + line
		return nil
	}
	m.send(req)
	return nil
}

func (m *Model) send(req protocol.Request) {
	m.state.Sent(req)
	if err := m.session.Send(req); err != nil {
		log.Warn().Err(err).Str("cmd", req.String()).Msg("send failed")
		m.phase = PhaseDisconnected
		m.err = err.Error()
	}
}

func (m *Model) quit() tea.Cmd {
	_ = m.session.Close()
	return tea.Quit
}
