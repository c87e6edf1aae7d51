// Package ui is the terminal front end. It renders whatever GameState
// it was last handed and turns key presses into session calls (when
// this process is the authority) or move requests (when it is a
// replica). No game rule lives here.
package ui

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndquang/thirteen/internal/game/card"
	"github.com/ndquang/thirteen/internal/game/engine"
	"github.com/ndquang/thirteen/internal/host"
	"github.com/ndquang/thirteen/internal/logger"
	netclient "github.com/ndquang/thirteen/internal/network/client"
	"github.com/ndquang/thirteen/internal/protocol"
	"github.com/ndquang/thirteen/internal/protocol/convert"
	"github.com/ndquang/thirteen/internal/sound"
)

type mode int

const (
	modeMenu mode = iota
	modeBrowse
	modeGame
)

type menuStage int

const (
	stageName menuStage = iota
	stageChoose
	stageJoinCode
)

// Messages pumped into the program from outside the update loop.
type (
	// StateMsg delivers a fresh authoritative state.
	StateMsg struct{ State *engine.GameState }
	// ServerMsg delivers a decoded relay frame.
	ServerMsg struct{ Msg *protocol.Message }
	// NetClosedMsg reports the relay connection dropping.
	NetClosedMsg struct{}
)

// Model is the top-level bubbletea model.
type Model struct {
	serverURL  string
	playerName string
	send       func(tea.Msg)

	mode      mode
	stage     menuStage
	choice    int
	nameInput textinput.Model
	codeInput textinput.Model
	chatInput textinput.Model

	width  int
	height int

	client  *netclient.Client
	session *host.Session // non-nil when this process is the authority
	isHost  bool
	online  bool
	mySeat  int
	lobbyID string

	state    *engine.GameState
	cursor   int
	selected map[card.Card]bool

	statusLine  string
	errLine     string
	chatting    bool
	chatLog     []string
	lobbies     []protocol.LobbySummary
	leaderboard []protocol.WinEntry

	sounds    *sound.SoundManager
	seenMoves int
	wasMyTurn bool
}

// NewModel builds the UI for the given relay URL.
func NewModel(serverURL, defaultName string) *Model {
	nameInput := textinput.New()
	nameInput.Placeholder = "Your name"
	nameInput.CharLimit = 20
	nameInput.Width = 24
	nameInput.SetValue(defaultName)
	nameInput.Focus()

	codeInput := textinput.New()
	codeInput.Placeholder = "Lobby code"
	codeInput.CharLimit = 12
	codeInput.Width = 24

	chatInput := textinput.New()
	chatInput.Placeholder = "Press / to chat"
	chatInput.CharLimit = 80
	chatInput.Width = 40

	sounds := sound.NewSoundManager()
	if err := sounds.Init(); err != nil {
		logger.Error("sound init: %v", err)
	}

	return &Model{
		serverURL: serverURL,
		nameInput: nameInput,
		codeInput: codeInput,
		chatInput: chatInput,
		selected:  make(map[card.Card]bool),
		sounds:    sounds,
	}
}

// SetSend wires the program's Send so background goroutines (network
// pumps, the host session) can inject messages.
func (m *Model) SetSend(send func(tea.Msg)) {
	m.send = send
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case StateMsg:
		m.applyState(msg.State)
		return m, nil

	case ServerMsg:
		m.handleServer(msg.Msg)
		return m, nil

	case NetClosedMsg:
		if m.mode == modeGame && m.online {
			m.errLine = "Connection lost"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.updateInputs(msg)
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	cmds = append(cmds, cmd)
	m.codeInput, cmd = m.codeInput.Update(msg)
	cmds = append(cmds, cmd)
	m.chatInput, cmd = m.chatInput.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.shutdown()
		return m, tea.Quit
	}

	switch m.mode {
	case modeMenu:
		return m.handleMenuKey(msg)
	case modeBrowse:
		return m.handleBrowseKey(msg)
	case modeGame:
		return m.handleGameKey(msg)
	}
	return m, nil
}

// --- Menu ---

func (m *Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.stage {
	case stageName:
		if msg.Type == tea.KeyEnter {
			if name := m.nameInput.Value(); name != "" {
				m.playerName = name
				m.stage = stageChoose
				m.nameInput.Blur()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case stageChoose:
		switch msg.String() {
		case "up", "k":
			if m.choice > 0 {
				m.choice--
			}
		case "down", "j":
			if m.choice < 3 {
				m.choice++
			}
		case "enter":
			return m.chooseMenuItem()
		case "q":
			m.shutdown()
			return m, tea.Quit
		}
		return m, nil

	case stageJoinCode:
		switch msg.Type {
		case tea.KeyEnter:
			if code := m.codeInput.Value(); code != "" {
				return m, m.joinLobby(code)
			}
			return m, nil
		case tea.KeyEsc:
			m.stage = stageChoose
			m.codeInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.codeInput, cmd = m.codeInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) chooseMenuItem() (tea.Model, tea.Cmd) {
	m.errLine = ""
	switch m.choice {
	case 0: // solo
		m.startSolo()
	case 1: // host a lobby
		if err := m.connect(); err != nil {
			m.errLine = err.Error()
			return m, nil
		}
		if err := m.client.CreateLobby(m.playerName+"'s table", false); err != nil {
			m.errLine = err.Error()
		}
	case 2: // join by code
		m.stage = stageJoinCode
		m.codeInput.Focus()
		return m, textinput.Blink
	case 3: // browse public lobbies
		if err := m.connect(); err != nil {
			m.errLine = err.Error()
			return m, nil
		}
		m.mode = modeBrowse
		m.choice = 0
		if err := m.client.GetPublicLobbies(); err != nil {
			m.errLine = err.Error()
		}
	}
	return m, nil
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.choice > 0 {
			m.choice--
		}
	case "down", "j":
		if m.choice < len(m.lobbies)-1 {
			m.choice++
		}
	case "r":
		if m.client != nil {
			_ = m.client.GetPublicLobbies()
		}
	case "enter":
		if m.choice < len(m.lobbies) {
			return m, m.joinLobby(m.lobbies[m.choice].ID)
		}
	case "esc", "q":
		m.mode = modeMenu
		m.stage = stageChoose
		m.choice = 0
	}
	return m, nil
}

// --- Game ---

func (m *Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.chatting {
		switch msg.Type {
		case tea.KeyEnter:
			if text := m.chatInput.Value(); text != "" && m.client != nil {
				_ = m.client.SendChat(text)
			}
			m.chatInput.SetValue("")
			m.chatting = false
			m.chatInput.Blur()
			return m, nil
		case tea.KeyEsc:
			m.chatting = false
			m.chatInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.chatInput, cmd = m.chatInput.Update(msg)
		return m, cmd
	}

	hand := m.myHand()
	switch msg.String() {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(hand)-1 {
			m.cursor++
		}
	case " ":
		if m.cursor < len(hand) {
			c := hand[m.cursor]
			if m.selected[c] {
				delete(m.selected, c)
			} else {
				m.selected[c] = true
			}
		}
	case "enter":
		m.submitPlay()
	case "p":
		m.submitPass()
	case "/":
		if m.online {
			m.chatting = true
			m.chatInput.Focus()
			return m, textinput.Blink
		}
	case "q":
		m.leaveGame()
	}
	return m, nil
}

func (m *Model) submitPlay() {
	if !m.isMyTurn() {
		m.errLine = "Not your turn"
		return
	}
	selection := m.selection()
	if len(selection) == 0 {
		m.errLine = "Select cards first"
		return
	}

	m.errLine = ""
	if m.session != nil {
		if err := m.session.Play(m.mySeat, selection); err != nil {
			m.errLine = err.Error()
			return
		}
	} else if m.client != nil {
		_ = m.client.RequestMove(protocol.ActionPlay, m.mySeat, convert.CardsToInfos(selection))
	}
	m.selected = make(map[card.Card]bool)
}

func (m *Model) submitPass() {
	if !m.isMyTurn() {
		m.errLine = "Not your turn"
		return
	}

	m.errLine = ""
	if m.session != nil {
		if err := m.session.Pass(m.mySeat); err != nil {
			m.errLine = err.Error()
			return
		}
	} else if m.client != nil {
		_ = m.client.RequestMove(protocol.ActionPass, m.mySeat, nil)
	}
	m.selected = make(map[card.Card]bool)
}

// leaveGame returns to the menu, giving the seat back online.
func (m *Model) leaveGame() {
	if m.session != nil {
		m.session.Stop()
		m.session = nil
	}
	if m.client != nil {
		_ = m.client.LeaveLobby()
	}
	m.state = nil
	m.online = false
	m.isHost = false
	m.lobbyID = ""
	m.selected = make(map[card.Card]bool)
	m.chatLog = nil
	m.seenMoves = 0
	m.mode = modeMenu
	m.stage = stageChoose
	m.choice = 0
}

// --- Session wiring ---

func (m *Model) startSolo() {
	seats := engine.DefaultSeats()
	seats[0].Name = m.playerName

	m.session = host.NewSession(nil, seats)
	m.session.OnState = func(s *engine.GameState) {
		if m.send != nil {
			m.send(StateMsg{State: s})
		}
	}
	m.mySeat = 0
	m.online = false
	m.isHost = true
	m.mode = modeGame
	m.session.Start()
}

func (m *Model) connect() error {
	if m.client != nil && m.client.IsConnected() {
		return nil
	}

	c := netclient.NewClient(m.serverURL, m.playerName)
	c.OnMessage = func(msg *protocol.Message) {
		if m.send != nil {
			m.send(ServerMsg{Msg: msg})
		}
	}
	c.OnClose = func() {
		if m.send != nil {
			m.send(NetClosedMsg{})
		}
	}
	if err := c.Connect(); err != nil {
		return fmt.Errorf("connect to %s: %w", m.serverURL, err)
	}
	c.StartHeartbeat()
	m.client = c
	return nil
}

func (m *Model) joinLobby(code string) tea.Cmd {
	if err := m.connect(); err != nil {
		m.errLine = err.Error()
		return nil
	}
	if err := m.client.JoinLobby(code); err != nil {
		m.errLine = err.Error()
	}
	return nil
}

func (m *Model) shutdown() {
	if m.session != nil {
		m.session.Stop()
	}
	if m.client != nil {
		m.client.Close()
	}
	m.sounds.Close()
}

// --- Relay frames ---

func (m *Model) handleServer(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgLobbyJoined:
		payload, err := protocol.ParsePayload[protocol.LobbyJoinedPayload](msg)
		if err != nil {
			return
		}
		m.lobbyID = payload.LobbyID
		m.mySeat = payload.Seat
		m.isHost = payload.IsHost
		m.online = true
		m.mode = modeGame
		m.errLine = ""
		m.statusLine = "Lobby " + payload.LobbyID
		if payload.IsHost {
			m.startHosting()
		} else {
			m.statusLine = "Lobby " + payload.LobbyID + ", waiting for host state"
		}

	case protocol.MsgPlayerJoined, protocol.MsgPlayerLeft:
		payload, err := protocol.ParsePayload[protocol.SeatsPayload](msg)
		if err != nil {
			return
		}
		verb := "joined"
		if msg.Type == protocol.MsgPlayerLeft {
			verb = "left"
		}
		m.statusLine = payload.PlayerName + " " + verb
		if m.session != nil {
			m.session.Reconcile(payload.Seats)
		}

	case protocol.MsgRequestMove:
		// The relay forwards guest intents to the host connection only.
		if m.session == nil {
			return
		}
		payload, err := protocol.ParsePayload[protocol.MoveRequestPayload](msg)
		if err != nil {
			return
		}
		m.session.HandleMoveRequest(payload)

	case protocol.MsgSendInitialState, protocol.MsgSyncGameState:
		if m.session != nil {
			return // we are the authority; this is our own echo
		}
		payload, err := protocol.ParsePayload[protocol.SyncStatePayload](msg)
		if err != nil {
			return
		}
		var state engine.GameState
		if err := json.Unmarshal(payload.State, &state); err != nil {
			logger.Error("bad state sync: %v", err)
			return
		}
		m.applyState(&state)

	case protocol.MsgReceiveChat:
		payload, err := protocol.ParsePayload[protocol.ChatPayload](msg)
		if err != nil {
			return
		}
		m.chatLog = append(m.chatLog, payload.Sender+": "+payload.Content)
		if len(m.chatLog) > 8 {
			m.chatLog = m.chatLog[len(m.chatLog)-8:]
		}

	case protocol.MsgPublicLobbies:
		payload, err := protocol.ParsePayload[protocol.PublicLobbiesPayload](msg)
		if err != nil {
			return
		}
		m.lobbies = payload.Lobbies
		if m.choice >= len(m.lobbies) {
			m.choice = 0
		}

	case protocol.MsgLeaderboard:
		payload, err := protocol.ParsePayload[protocol.LeaderboardPayload](msg)
		if err != nil {
			return
		}
		m.leaderboard = payload.Entries

	case protocol.MsgError:
		payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
		if err != nil {
			return
		}
		m.errLine = payload.Message
		// The lobby vanishing underneath us sends us back to the menu.
		if payload.Code == protocol.ErrCodeLobbyNotFound && m.mode == modeGame {
			m.leaveGame()
		}
	}
}

// startHosting spins the authoritative session up with AIs in every
// seat but ours; joining humans take seats over via Reconcile.
func (m *Model) startHosting() {
	seats := engine.DefaultSeats()
	seats[m.mySeat] = engine.Seat{Name: m.playerName, Type: engine.Human}

	m.session = host.NewSession(m.client, seats)
	m.session.OnState = func(s *engine.GameState) {
		if m.send != nil {
			m.send(StateMsg{State: s})
		}
	}
	m.session.Start()
}

// --- State bookkeeping ---

func (m *Model) applyState(s *engine.GameState) {
	m.playEffects(s)
	m.state = s

	hand := m.myHand()
	if m.cursor >= len(hand) {
		m.cursor = max(0, len(hand)-1)
	}
	// Drop selections for cards no longer held.
	for c := range m.selected {
		if !card.ContainsAll(hand, []card.Card{c}) {
			delete(m.selected, c)
		}
	}
}

// playEffects sounds the new history entries and the your-turn bell.
func (m *Model) playEffects(s *engine.GameState) {
	if len(s.History) < m.seenMoves {
		m.seenMoves = 0 // new game
	}
	for _, mv := range s.History[m.seenMoves:] {
		switch mv.Kind {
		case engine.MovePlay:
			m.sounds.Play(sound.EffectPlay)
		case engine.MovePass:
			m.sounds.Play(sound.EffectPass)
		case engine.MoveTrickReset:
			m.sounds.Play(sound.EffectTrickWon)
		case engine.MoveRoundEnd:
			m.sounds.Play(sound.EffectRoundEnd)
		case engine.MoveNewRound:
			m.sounds.Play(sound.EffectDeal)
		}
	}
	m.seenMoves = len(s.History)

	myTurn := s.Phase == engine.Playing && s.CurrentPlayer == m.mySeat
	if myTurn && !m.wasMyTurn {
		m.sounds.Play(sound.EffectYourTurn)
	}
	m.wasMyTurn = myTurn

	if s.Phase == engine.GameOver {
		if w := s.Winner(); w != nil {
			if w.Seat == m.mySeat {
				m.sounds.Play(sound.EffectWin)
			} else {
				m.sounds.Play(sound.EffectLose)
			}
		}
	}
}

func (m *Model) myHand() []card.Card {
	if m.state == nil || m.mySeat < 0 || m.mySeat >= len(m.state.Players) {
		return nil
	}
	return m.state.Players[m.mySeat].Hand
}

func (m *Model) selection() []card.Card {
	hand := m.myHand()
	var out []card.Card
	for _, c := range hand {
		if m.selected[c] {
			out = append(out, c)
		}
	}
	return out
}

func (m *Model) isMyTurn() bool {
	return m.state != nil && m.state.Phase == engine.Playing && m.state.CurrentPlayer == m.mySeat
}
