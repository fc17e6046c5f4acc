package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-quest/internal/config"
	"github.com/vovakirdan/flappy-quest/internal/core"
	"github.com/vovakirdan/flappy-quest/internal/games/flappy"
	"github.com/vovakirdan/flappy-quest/internal/leaderboard"
	"github.com/vovakirdan/flappy-quest/internal/progression"
	"github.com/vovakirdan/flappy-quest/internal/session"
)

type view int

const (
	viewHub view = iota
	viewGame
)

type panel int

const (
	panelNone panel = iota
	panelTasks
	panelBoard
	panelFriends
	panelName
	panelShare
)

// Options configures the terminal host.
type Options struct {
	Config      config.Config
	Logger      *log.Logger
	InboundCode string // Referral code to pre-fill in the friends panel
	Width       int
	Height      int
}

// Model is the Bubble Tea model for one player: the hub and the rounds.
type Model struct {
	ctrl  *session.Controller
	prog  *progression.Engine
	board *leaderboard.Store

	cfg       config.Config
	logger    *log.Logger
	keyMapper *KeyMapper
	keys      HubKeyMap
	help      help.Model
	input     textinput.Model
	table     table.Model
	screen    *core.Screen

	inboundCode string
	width       int
	height      int
	view        view
	panel       panel
	notice      string
	quitting    bool
}

// NewModel creates the host model for profile.
func NewModel(profile *session.Profile, opts Options) Model {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	input := textinput.New()
	input.CharLimit = 24
	input.Width = 24

	m := Model{
		ctrl:        profile.Controller,
		prog:        profile.Progression,
		board:       profile.Leaderboard,
		cfg:         opts.Config,
		logger:      opts.Logger,
		keyMapper:   NewKeyMapper(),
		keys:        DefaultHubKeyMap(),
		help:        help.New(),
		input:       input,
		screen:      core.NewScreen(opts.Width, gameRows(opts.Height)),
		inboundCode: profile.Progression.InboundCode(opts.InboundCode),
		width:       opts.Width,
		height:      opts.Height,
	}
	m.table = newBoardTable(m.width)
	m.refreshBoard()
	return m
}

// gameRows leaves one line under the field for the HUD.
func gameRows(height int) int {
	return max(height-1, 2)
}

// Init initializes the model. Rounds start from the hub.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.panel == panelName || m.panel == panelFriends {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)

	case SettleMsg:
		return m.handleSettle(msg)
	}

	return m, nil
}

// handleKey processes keyboard input outside text entry.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		return m.quit()
	}

	if m.view == viewGame {
		switch m.ctrl.State() {
		case session.StatePlaying:
			if action == core.ActionJump {
				m.ctrl.Jump()
			}
		case session.StateGameOver:
			switch action {
			case core.ActionStart, core.ActionJump:
				return m.startRound()
			case core.ActionBack:
				m.ctrl.Menu()
				m.view = viewHub
			}
		}
		return m, nil
	}

	switch action {
	case core.ActionStart, core.ActionJump:
		m.panel = panelNone
		return m.startRound()

	case core.ActionCheckIn:
		res, err := m.prog.CheckIn()
		if err != nil {
			m.notice = "Already checked in today. Come back tomorrow!"
			return m, nil
		}
		m.notice = checkInNotice(res)
		m.panel = panelTasks

	case core.ActionTasks:
		m.panel = togglePanel(m.panel, panelTasks)

	case core.ActionBoard:
		m.panel = togglePanel(m.panel, panelBoard)
		m.refreshBoard()

	case core.ActionShare:
		m.panel = togglePanel(m.panel, panelShare)

	case core.ActionFriends:
		m.panel = panelFriends
		m.input.Placeholder = "Friend's code"
		m.input.SetValue(m.inboundCode)
		return m, m.input.Focus()

	case core.ActionName:
		m.panel = panelName
		m.input.Placeholder = "Your name"
		m.input.SetValue(m.prog.PlayerName())
		return m, m.input.Focus()

	case core.ActionBack:
		m.panel = panelNone
		m.notice = ""
	}

	return m, nil
}

func togglePanel(current, p panel) panel {
	if current == p {
		return panelNone
	}
	return p
}

// handleInputKey processes keys while a text field has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()

	case "esc":
		m.input.Blur()
		m.panel = panelNone
		return m, nil

	case "enter":
		value := m.input.Value()
		switch m.panel {
		case panelName:
			// Empty names leave the action disabled
			if err := m.prog.SetPlayerName(value); err != nil {
				return m, nil
			}
			m.notice = fmt.Sprintf("Name saved: %s", m.prog.PlayerName())
			m.input.Blur()
			m.panel = panelNone

		case panelFriends:
			friend, err := m.prog.AcceptInvite(value)
			if errors.Is(err, progression.ErrEmptyInviteCode) || errors.Is(err, progression.ErrSelfInvite) {
				return m, nil
			}
			m.notice = fmt.Sprintf("%s joined your friends! +%d XP", friend.Name, m.cfg.Progression.FriendInviteXP)
			m.inboundCode = ""
			m.input.SetValue("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, gameRows(msg.Height))
	m.help.Width = msg.Width
	m.table = newBoardTable(m.width)
	m.refreshBoard()
	return m, nil
}

// startRound begins a round and schedules its first tick.
func (m Model) startRound() (tea.Model, tea.Cmd) {
	gen, err := m.ctrl.Start()
	if err != nil {
		m.logger.Error("cannot start round", "err", err)
		return m, nil
	}
	m.view = viewGame
	m.notice = ""
	return m, tickCmd(m.cfg.Session.TickRate, gen)
}

// handleTick processes simulation ticks. Ticks from a stopped round are
// dropped without rescheduling, which ends their chain.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	res := m.ctrl.Tick(msg.Gen)
	if res.Stale {
		return m, nil
	}
	if res.GameOver {
		return m, settleCmd(m.cfg.Session.SettleDelay, res.Settlement.Game)
	}
	return m, tickCmd(m.cfg.Session.TickRate, msg.Gen)
}

// handleSettle applies a round's deferred settlement.
func (m Model) handleSettle(msg SettleMsg) (tea.Model, tea.Cmd) {
	out, ok := m.ctrl.Settle(msg.Game)
	if !ok {
		return m, nil
	}
	m.notice = settlementNotice(out)
	m.refreshBoard()
	return m, nil
}

// quit flushes pending effects and exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.ctrl.Close()
	m.quitting = true
	return m, tea.Quit
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.view == viewGame {
		return m.gameView()
	}
	return m.hubView()
}

// gameView draws the field and the HUD line.
func (m Model) gameView() string {
	snap := m.ctrl.Snapshot()

	var overlay *flappy.Overlay
	if snap.State == session.StateGameOver {
		overlay = &flappy.Overlay{
			Title:    "GAME OVER",
			Subtitle: fmt.Sprintf("Score: %d  Enter: replay  Esc: hub", snap.World.Score),
		}
	} else if snap.World.Ticks == 0 {
		overlay = &flappy.Overlay{Title: "GET READY", Subtitle: "Space to flap"}
	}
	flappy.Render(m.screen, snap.World, m.ctrl.Params(), overlay)

	hudStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	hud := fmt.Sprintf(" Best: %d  Level: %d  Game #%d", max(m.prog.HighScore(), snap.World.Score), m.prog.Level(), snap.Game)
	if m.notice != "" {
		hud += "  " + m.notice
	}
	return RenderScreen(m.screen) + "\n" + hudStyle.Render(hud)
}

func checkInNotice(res progression.CheckInResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day %d streak! +%d XP", res.Streak, res.Reward)
	for _, t := range res.CompletedTasks {
		fmt.Fprintf(&b, "  Task complete: %s (+%d XP)", t.Title, t.Reward)
	}
	return b.String()
}

func settlementNotice(out session.Outcome) string {
	r := out.Result
	parts := []string{fmt.Sprintf("+%d XP", r.XPGained)}
	if r.NewHighScore {
		parts = append(parts, "New high score!")
	}
	if r.LeveledUp {
		parts = append(parts, fmt.Sprintf("Level up! Now level %d", r.Level))
	}
	for _, t := range r.CompletedTasks {
		parts = append(parts, fmt.Sprintf("Task complete: %s", t.Title))
	}
	if out.Ranked {
		parts = append(parts, fmt.Sprintf("Rank #%d", out.Rank))
	}
	return strings.Join(parts, "  ")
}

// Run starts the Bubble Tea program for profile and blocks until it exits.
func Run(profile *session.Profile, opts Options) error {
	model := NewModel(profile, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	profile.Controller.Close()
	return err
}
