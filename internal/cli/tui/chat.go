package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/engine"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/transport"
)

// UI configuration constants
const (
	defaultInputWidth     = 100
	defaultViewportWidth  = 100
	defaultViewportHeight = 30
	defaultWindowWidth    = 100
	defaultWindowHeight   = 40
	inputCharLimit        = 4000
	inputHeightReserved   = 2
	statusHeightReserved  = 3
	minContentHeight      = 10
)

// Style definitions
var (
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boldStyle     = lipgloss.NewStyle().Bold(true)
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	dayStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	deliveredTick = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	readTick      = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// ChatInfo carries the conversation labels the view needs.
type ChatInfo struct {
	ContactName  string
	ContactPhone string
	AgentName    string
}

// ChatProgram encapsulates the chat TUI program
type ChatProgram struct {
	eng  *engine.Engine
	tr   *transport.Transport
	info ChatInfo
}

// NewChatProgram creates a new chat program instance
func NewChatProgram(eng *engine.Engine, tr *transport.Transport, info ChatInfo) *ChatProgram {
	return &ChatProgram{eng: eng, tr: tr, info: info}
}

// Run starts the chat TUI program. The engine pushes a refresh message
// into the Bubble Tea loop on every state change, so renders track the
// log without polling.
func (p *ChatProgram) Run() error {
	program := tea.NewProgram(initialModel(p.eng, p.tr, p.info), tea.WithAltScreen())
	p.eng.SetOnUpdate(func() {
		program.Send(engineUpdateMsg{})
	})
	p.tr.Connect()
	_, err := program.Run()
	p.eng.SetOnUpdate(nil)
	return err
}

// chatModel is the Bubble Tea model containing all chat interface state
type chatModel struct {
	// Dependencies
	eng  *engine.Engine
	tr   *transport.Transport
	info ChatInfo

	// UI components
	input       textinput.Model
	contentView viewport.Model

	// Window dimensions
	width  int
	height int
}

// Message type definitions
type engineUpdateMsg struct{}

// initialModel creates the initial chat model
func initialModel(eng *engine.Engine, tr *transport.Transport, info ChatInfo) chatModel {
	input := textinput.New()
	input.Placeholder = "Type a message"
	input.Focus()
	input.CharLimit = inputCharLimit
	input.Width = defaultInputWidth
	input.Prompt = ""

	contentViewport := viewport.New(defaultViewportWidth, defaultViewportHeight)
	contentViewport.SetContent("")

	m := chatModel{
		eng:         eng,
		tr:          tr,
		info:        info,
		input:       input,
		contentView: contentViewport,
		width:       defaultWindowWidth,
		height:      defaultWindowHeight,
	}
	m.refreshContent()
	return m
}

// Init initializes the model (Bubble Tea interface)
func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update processes messages and updates the model (Bubble Tea interface)
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleKeyPress(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case engineUpdateMsg:
		m.refreshContent()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	// Keystrokes that change the draft count as typing activity.
	if m.input.Value() != before {
		m.eng.SendTyping(m.input.Value() != "")
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m *chatModel) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return tea.Quit

	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		if text != "" {
			m.input.Reset()
			m.eng.SendTyping(false)
			m.eng.Submit(text, domain.KindText)
			m.refreshContent()
		}

	case tea.KeyUp:
		m.contentView.LineUp(1)

	case tea.KeyDown:
		m.contentView.LineDown(1)

	case tea.KeyPgUp:
		m.contentView.ViewUp()

	case tea.KeyPgDown:
		m.contentView.ViewDown()
	}

	return nil
}

// handleWindowResize handles window size changes
func (m *chatModel) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := msg.Height - inputHeightReserved - statusHeightReserved
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}

	m.contentView.Width = msg.Width
	m.contentView.Height = contentHeight
	m.input.Width = msg.Width - 3

	m.refreshContent()
}

// refreshContent re-renders the message log into the viewport.
func (m *chatModel) refreshContent() {
	var b strings.Builder

	now := time.Now()
	for _, group := range engine.GroupByDay(m.eng.Messages()) {
		b.WriteString("\n")
		b.WriteString(dayStyle.Render("── " + engine.DayLabel(group.Day, now) + " ──"))
		b.WriteString("\n")
		for _, msg := range group.Messages {
			b.WriteString(m.renderMessage(msg))
		}
	}

	if m.eng.Typing() {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%s is typing...", m.info.ContactName)))
		b.WriteString("\n")
	}

	display := b.String()
	if m.width > 0 {
		display = wrapText(display, m.width)
	}

	m.contentView.SetContent(display)
	m.contentView.GotoBottom()
}

// renderMessage renders one log entry.
func (m *chatModel) renderMessage(msg domain.Message) string {
	var b strings.Builder

	stamp := dimStyle.Render(msg.Timestamp.Local().Format("15:04"))
	if msg.Direction == domain.DirectionOutbound {
		b.WriteString(fmt.Sprintf("%s %s %s\n", stamp, boldStyle.Render("You"), deliveryTicks(msg.DeliveryState)))
	} else {
		b.WriteString(fmt.Sprintf("%s %s\n", stamp, accentStyle.Render(m.info.ContactName)))
	}

	content := msg.Content
	if msg.Kind != domain.KindText && msg.MediaURL != "" {
		content = fmt.Sprintf("[%s] %s", msg.Kind, msg.MediaURL)
	}
	b.WriteString(content)
	b.WriteString("\n")
	return b.String()
}

// deliveryTicks maps a delivery state to its WhatsApp-style glyph.
func deliveryTicks(state domain.DeliveryState) string {
	switch state {
	case domain.DeliveryDelivered:
		return deliveredTick.Render("✓✓")
	case domain.DeliveryRead:
		return readTick.Render("✓✓")
	default:
		return pendingStyle.Render("✓")
	}
}

// connectionBadge describes the transport state for the status bar.
func (m *chatModel) connectionBadge() string {
	state := m.eng.ConnectionState()
	switch state {
	case transport.StateConnected:
		return accentStyle.Render("● connected")
	case transport.StateConnecting:
		return dimStyle.Render("● connecting...")
	case transport.StateErrored:
		return errorStyle.Render("● connection error")
	default:
		return dimStyle.Render("● disconnected")
	}
}

// wrapText applies auto-wrapping to text, honoring wide runes.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 10 {
		return text
	}

	lines := strings.Split(text, "\n")
	var result strings.Builder

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(wrapLine(line, maxWidth))
	}

	return result.String()
}

// wrapLine wraps a single line of text using display widths.
func wrapLine(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}

	var result strings.Builder
	var currentLine strings.Builder
	currentWidth := 0

	for _, r := range line {
		runeW := runewidth.RuneWidth(r)

		if currentWidth+runeW > maxWidth && currentWidth > 0 {
			result.WriteString(currentLine.String())
			result.WriteString("\n")
			currentLine.Reset()
			currentWidth = 0
		}

		currentLine.WriteRune(r)
		currentWidth += runeW
	}

	if currentLine.Len() > 0 {
		result.WriteString(currentLine.String())
	}

	return result.String()
}

// View renders the UI (Bubble Tea interface)
func (m chatModel) View() string {
	// Top status bar
	status := boldStyle.Render(m.info.ContactName)
	if m.info.ContactPhone != "" {
		status += dimStyle.Render("  " + m.info.ContactPhone)
	}
	status += "  " + m.connectionBadge()

	// Content area
	content := m.contentView.View()

	// Input area
	inputView := promptStyle.Render("> ") + m.input.View()

	// Bottom help text
	help := dimStyle.Render("Enter send • ↑↓ scroll • Esc quit")

	return lipgloss.JoinVertical(lipgloss.Left, status, "", content, "", inputView, help)
}
