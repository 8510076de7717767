package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/trackferry/trackferry/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SongListView ViewState = iota
	ConfirmView
	TransferView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.TransferEngine
	sourceFile   string
	songs        []string
	target       tasks.Target
	width        int
	height       int
	songList     list.Model
	progressChan chan tasks.ProgressUpdate
	transferDone chan transferCompleteMsg
	progress     tasks.ProgressUpdate
	ledger       *tasks.Ledger
	err          error
	help         help.Model
	keys         keyMap
}

type progressUpdateMsg tasks.ProgressUpdate

type transferCompleteMsg struct {
	ledger *tasks.Ledger
	err    error
}

// NewModel creates a new TUI model for transferring the given songs.
func NewModel(ctx context.Context, engine *tasks.TransferEngine, sourceFile string, songs []string, target tasks.Target) *Model {
	items := make([]list.Item, len(songs))
	for i, song := range songs {
		items[i] = songItem{title: song}
	}

	songList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	songList.Title = fmt.Sprintf("Songs in %s", sourceFile)

	return &Model{
		ctx:        ctx,
		view:       SongListView,
		engine:     engine,
		sourceFile: sourceFile,
		songs:      songs,
		target:     target,
		songList:   songList,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.songList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SongListView:
			return m.handleSongListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case transferCompleteMsg:
		m.ledger = msg.ledger
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case SongListView:
		return m.renderSongList()
	case ConfirmView:
		return m.renderConfirm()
	case TransferView:
		return m.renderTransfer()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n", "esc":
		m.view = SongListView
		return m, nil
	case "y":
		m.view = TransferView
		return m, m.startTransfer()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	case "r":
		m.view = SongListView
		m.ledger = nil
		m.err = nil
		m.progress = tasks.ProgressUpdate{}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == SongListView {
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

func (m *Model) startTransfer() tea.Cmd {
	progressChan := make(chan tasks.ProgressUpdate, 50)
	m.progressChan = progressChan

	done := make(chan transferCompleteMsg, 1)
	go func() {
		ledger, err := m.engine.Run(m.ctx, m.songs, m.target, progressChan)
		done <- transferCompleteMsg{ledger: ledger, err: err}
		close(progressChan)
	}()
	m.transferDone = done

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progressChan := m.progressChan
	done := m.transferDone
	return func() tea.Msg {
		if progressChan == nil {
			return transferCompleteMsg{ledger: m.ledger, err: m.err}
		}

		update, ok := <-progressChan
		if !ok {
			return <-done
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderSongList() string {
	helpKeys := []key.Binding{m.keys.confirm, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	targetDesc := fmt.Sprintf("new playlist %q", m.target.Name)
	if m.target.PlaylistID != "" {
		targetDesc = fmt.Sprintf("existing playlist %s", m.target.PlaylistID)
	}

	title := styles.title.Render(fmt.Sprintf("Transfer %d songs to %s?", len(m.songs), targetDesc))
	info := fmt.Sprintf("\nSource: %s\nSongs: %d\n", m.sourceFile, len(m.songs))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderTransfer() string {
	title := styles.title.Render("Transferring Songs")

	var phase string
	switch m.progress.Phase {
	case tasks.ResolveTarget:
		phase = "Resolving target playlist..."
	case tasks.FetchExisting:
		phase = "Fetching current playlist items..."
	case tasks.PreFilter:
		phase = fmt.Sprintf("Checking for duplicates (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.ProcessBatch:
		phase = "Starting next batch..."
	case tasks.ItemDone:
		phase = fmt.Sprintf("Processing songs (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.QuotaHalt:
		phase = styles.warn.Render("Quota budget reached, stopping early")
	default:
		phase = "Working..."
	}

	hint := styles.help.Render("each song costs quota, large lists take a while")
	return fmt.Sprintf("%s\n\n%s\n%s\n\n%s", title, phase, m.progress.Message, hint)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Transfer failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	if m.ledger == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Transfer Complete!")
	info := fmt.Sprintf(
		"\nPlaylist: %s (%s)\nRequested: %d\nAdded: %d\nDuplicates skipped: %d\nNot found: %d\nFailed: %d",
		m.ledger.PlaylistName,
		m.ledger.PlaylistID,
		m.ledger.TotalRequested,
		m.ledger.Added,
		m.ledger.SkippedDuplicates,
		m.ledger.NotFound,
		m.ledger.Failed,
	)

	var unmatched string
	if m.ledger.NotFound > 0 || m.ledger.Failed > 0 {
		unmatched = fmt.Sprintf("\n\n%s", styles.warn.Render("Unmatched songs:"))
		for _, outcome := range m.ledger.Outcomes {
			if outcome.Status == tasks.StatusNotFound || outcome.Status == tasks.StatusFailed {
				unmatched += fmt.Sprintf("\n  • %s", outcome.Song)
			}
		}
	}

	var halted string
	if m.ledger.HaltedEarly {
		halted = fmt.Sprintf("\n\n%s", styles.warn.Render(
			fmt.Sprintf("Stopped early to stay within quota: %d songs unprocessed", len(m.ledger.Unprocessed))))
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s%s\n\n%s", title, info, unmatched, halted, helpView)
}
