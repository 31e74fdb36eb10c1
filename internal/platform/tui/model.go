package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	sokocore "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// footerLines is the space under the board for the status line and the short help.
const footerLines = 2

// GameOptions configures a GameModel.
type GameOptions struct {
	Store      *storage.Store
	Config     core.RuntimeConfig
	RunID      string
	Player     string
	Standalone bool        // Back quits instead of returning to a menu
	Logger     *log.Logger // Optional; logs finished attempts
}

// GameModel is the Bubble Tea model for playing one level.
// Play is turn-based: every key press is handled immediately and there is no tick loop.
type GameModel struct {
	game      *sokoban.Game
	screen    *core.Screen
	opts      GameOptions
	keyMapper *KeyMapper
	help      help.Model
	gameState core.GameState

	resultSaved bool
	best        int
	bestKnown   bool
	flash       string
	flashSeq    int
	quitting    bool
	backToMenu  bool
}

// NewGameModel creates a model for the given game and resets it.
func NewGameModel(game *sokoban.Game, opts GameOptions) GameModel {
	if opts.RunID == "" {
		opts.RunID = storage.NewRunID()
	}
	if opts.Config.ScreenW == 0 || opts.Config.ScreenH == 0 {
		opts.Config = core.DefaultConfig()
	}

	m := GameModel{
		game:      game,
		opts:      opts,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
	m.help.Width = opts.Config.ScreenW
	m.screen = core.NewScreen(opts.Config.ScreenW, boardHeight(opts.Config.ScreenH))

	game.Reset(m.boardConfig())
	m.gameState = game.State()
	m.loadBest()
	return m
}

func boardHeight(screenH int) int {
	return core.Max(1, screenH-footerLines)
}

func (m GameModel) boardConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: m.screen.Width(), ScreenH: m.screen.Height()}
}

func (m *GameModel) loadBest() {
	if m.opts.Store == nil {
		return
	}
	best, ok, err := m.opts.Store.BestSteps(m.game.Level().ID)
	if err != nil {
		return
	}
	m.best, m.bestKnown = best, ok
}

// Init implements tea.Model. The game is already reset by NewGameModel.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Config.ScreenW = msg.Width
		m.opts.Config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, boardHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case FlashExpiredMsg:
		if msg.Seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.recordAbandoned()
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionBack:
		m.recordAbandoned()
		m.backToMenu = true
		if m.opts.Standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case action == core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case action == core.ActionRestart:
		m.recordAbandoned()
		result := m.game.Step(core.FrameOf(core.ActionRestart))
		m.gameState = result.State
		m.resultSaved = false
		return m, m.setFlash("Level reloaded")

	case action.IsMove():
		result := m.game.Step(core.FrameOf(action))
		m.gameState = result.State
		if m.gameState.GameOver {
			m.recordFinished()
			return m, nil
		}
		if !result.Moved {
			if out, ok := m.game.LastOutcome(); ok && out.Reason == sokocore.ReasonPushBlocked {
				return m, m.setFlash("That crate will not budge")
			}
		}
	}

	return m, nil
}

func (m *GameModel) setFlash(text string) tea.Cmd {
	m.flashSeq++
	m.flash = text
	return flashCmd(m.flashSeq)
}

// recordFinished stores a cleared or out-of-steps attempt once.
func (m *GameModel) recordFinished() {
	if m.resultSaved {
		return
	}
	status := storage.ResultStepLimit
	if m.gameState.Won {
		status = storage.ResultCleared
	}
	m.saveResult(status)

	if m.gameState.Won && (!m.bestKnown || m.gameState.Steps < m.best) {
		m.best, m.bestKnown = m.gameState.Steps, true
	}
}

// recordAbandoned stores an attempt the player walked away from.
func (m *GameModel) recordAbandoned() {
	if m.resultSaved || m.gameState.GameOver || m.gameState.Steps == 0 {
		return
	}
	m.saveResult(storage.ResultAbandoned)
}

func (m *GameModel) saveResult(status storage.ResultStatus) {
	m.resultSaved = true

	if m.opts.Logger != nil {
		m.opts.Logger.Info("attempt finished",
			"player", m.opts.Player,
			"level", m.game.Level().ID,
			"status", status,
			"steps", m.gameState.Steps,
			"rejected", m.game.Rejected(),
		)
	}

	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveResult(storage.LevelResult{
		RunID:    m.opts.RunID,
		LevelID:  m.game.Level().ID,
		Player:   m.opts.Player,
		Steps:    m.gameState.Steps,
		MaxSteps: m.gameState.MaxSteps,
		Rejected: m.game.Rejected(),
		Status:   status,
	})
	if err != nil && m.opts.Logger != nil {
		m.opts.Logger.Warn("could not save result", "error", err)
	}
}

// View renders the board, the status line and the help bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keyMapper.Keys())))
	return b.String()
}

func (m GameModel) statusLine() string {
	switch {
	case m.flash != "":
		return flashStyle.Render(" " + m.flash)
	case m.gameState.Won:
		return clearedStyle.Render(fmt.Sprintf(" Cleared in %d steps", m.gameState.Steps))
	case m.bestKnown:
		return subtitleStyle.Render(fmt.Sprintf(" Best: %d steps", m.best))
	}
	return ""
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level picker.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Config returns the current runtime config (may have been updated by resize).
func (m GameModel) Config() core.RuntimeConfig {
	return m.opts.Config
}

// Run plays one level in the local terminal until the player quits.
func Run(game *sokoban.Game, opts GameOptions) error {
	opts.Standalone = true
	model := NewGameModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
