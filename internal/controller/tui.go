package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "gofold.dev/pkg/gofold/internal/model"
)

// Rows taken by the title, the status line and the help line.
const chromeRows = 4

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	foldedStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	popupStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// TUI implements UI using Bubble Tea for interactive browsing. Everything
// else is printed like SimpleUI does.
type TUI struct {
	*SimpleUI
	cmd *cobra.Command
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd), cmd: cmd}
}

// Browse runs the interactive viewer until the user quits.
func (t *TUI) Browse(ctx context.Context, browser Browser) error {
	model := newBrowseModel(ctx, browser)

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.cmd.InOrStdin()),
		tea.WithOutput(t.cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)

	_, err := program.Run()

	return err
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Fold     key.Binding
	Unfold   key.Binding
	Popup    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Fold:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", m.ActionFold.Label())),
		Unfold:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", m.ActionUnfold.Label())),
		Popup:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "actions")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Fold, k.Unfold, k.Popup, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Fold, k.Unfold, k.Popup},
		{k.Help, k.Quit},
	}
}

// sourceChangedMsg is sent when the browsed file changed on disk.
type sourceChangedMsg struct {
	path m.Path
}

// browseModel represents the Bubble Tea model of the interactive viewer.
type browseModel struct {
	ctx     context.Context
	browser Browser
	keys    keyMap
	help    help.Model

	height int
	width  int
	offset int

	// popup holds the offered actions while the context popup is open.
	popup       []m.ActionName
	popupCursor int

	status   string
	failed   bool
	quitting bool
}

func newBrowseModel(ctx context.Context, browser Browser) browseModel {
	return browseModel{
		ctx:     ctx,
		browser: browser,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

func (bm browseModel) Init() tea.Cmd {
	return waitForChange(bm.browser.Changes())
}

// waitForChange turns the next file change into a message.
func waitForChange(changes <-chan m.Path) tea.Cmd {
	if changes == nil {
		return nil
	}

	return func() tea.Msg {
		path, ok := <-changes
		if !ok {
			return nil
		}

		return sourceChangedMsg{path: path}
	}
}

func (bm browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		bm.height = msg.Height
		bm.width = msg.Width
		bm.help.Width = msg.Width
		bm.ensureVisible()

		return bm, nil

	case sourceChangedMsg:
		err := bm.browser.Reload(bm.ctx)
		if err != nil {
			bm.status = "reload failed: " + err.Error()
		} else {
			bm.status = "reloaded " + string(msg.path)
		}

		bm.failed = err != nil
		bm.ensureVisible()

		return bm, waitForChange(bm.browser.Changes())

	case tea.KeyMsg:
		if bm.popup != nil {
			return bm.handlePopupKey(msg)
		}

		return bm.handleKeyPress(msg)
	}

	return bm, nil
}

//nolint:cyclop // Key handling requires multiple cases for UI navigation
func (bm browseModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, bm.keys.Quit):
		bm.quitting = true
		return bm, tea.Quit
	case key.Matches(msg, bm.keys.Up):
		bm.browser.MoveCursor(-1)
	case key.Matches(msg, bm.keys.Down):
		bm.browser.MoveCursor(1)
	case key.Matches(msg, bm.keys.PageUp):
		bm.browser.MoveCursor(-bm.itemsPerPage())
	case key.Matches(msg, bm.keys.PageDown):
		bm.browser.MoveCursor(bm.itemsPerPage())
	case key.Matches(msg, bm.keys.Fold):
		bm.run(m.ActionFold)
	case key.Matches(msg, bm.keys.Unfold):
		bm.run(m.ActionUnfold)
	case key.Matches(msg, bm.keys.Popup):
		bm.popup = bm.browser.Popup()
		bm.popupCursor = 0

		if len(bm.popup) == 0 {
			bm.popup = nil
			bm.status = "no actions here"
			bm.failed = false
		}
	case key.Matches(msg, bm.keys.Help):
		bm.help.ShowAll = !bm.help.ShowAll
	}

	bm.ensureVisible()

	return bm, nil
}

func (bm browseModel) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		bm.quitting = true
		return bm, tea.Quit
	case key.Matches(msg, bm.keys.Up):
		bm.popupCursor = max(bm.popupCursor-1, 0)
	case key.Matches(msg, bm.keys.Down):
		bm.popupCursor = min(bm.popupCursor+1, len(bm.popup)-1)
	case key.Matches(msg, bm.keys.Popup):
		action := bm.popup[bm.popupCursor]
		bm.popup = nil
		bm.run(action)
		bm.ensureVisible()
	case key.Matches(msg, bm.keys.Quit):
		bm.popup = nil
	}

	return bm, nil
}

func (bm *browseModel) run(action m.ActionName) {
	applied, err := bm.browser.Run(bm.ctx, action)
	bm.failed = err != nil

	switch {
	case err != nil:
		bm.status = fmt.Sprintf("%s failed: %v", action.Label(), err)
	case !applied:
		bm.status = "no block on this line"
	default:
		bm.status = action.Label()
	}
}

// itemsPerPage returns how many source lines fit on screen.
func (bm browseModel) itemsPerPage() int {
	if bm.height <= chromeRows {
		return max(len(bm.browser.Lines()), 1)
	}

	return bm.height - chromeRows
}

func (bm *browseModel) ensureVisible() {
	cursor, page := bm.browser.Cursor(), bm.itemsPerPage()

	if cursor < bm.offset {
		bm.offset = cursor
	}

	if cursor >= bm.offset+page {
		bm.offset = cursor - page + 1
	}

	bm.offset = max(min(bm.offset, len(bm.browser.Lines())-page), 0)
}

func (bm browseModel) View() string {
	if bm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(bm.browser.Title()))
	b.WriteString("\n\n")

	bm.renderLines(&b)

	if bm.popup != nil {
		b.WriteString(bm.renderPopup())
		b.WriteString("\n")
	}

	if bm.failed {
		b.WriteString(errorStyle.Render(bm.status))
	} else {
		b.WriteString(statusStyle.Render(bm.status))
	}

	b.WriteString("\n")
	b.WriteString(bm.help.View(bm.keys))

	return b.String()
}

func (bm browseModel) renderLines(b *strings.Builder) {
	lines := bm.browser.Lines()
	end := min(bm.offset+bm.itemsPerPage(), len(lines))

	for i := bm.offset; i < end; i++ {
		text := strings.Repeat("    ", lines[i].Indent) + lines[i].Text
		if lines[i].Folded {
			text = foldedStyle.Render(text)
		}

		if i == bm.browser.Cursor() {
			text = cursorStyle.Render(text)
		}

		b.WriteString(text)
		b.WriteString("\n")
	}
}

func (bm browseModel) renderPopup() string {
	items := make([]string, 0, len(bm.popup))

	for i, action := range bm.popup {
		label := action.Label()
		if i == bm.popupCursor {
			label = activeStyle.Render("> " + label)
		} else {
			label = "  " + label
		}

		items = append(items, label)
	}

	return popupStyle.Render(strings.Join(items, "\n"))
}
