// Package tui is a terminal browser for the network: people on the left,
// the selected person's history in the middle, details on the right.
package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/session"
)

const (
	focusPeople = iota
	focusHistory
)

type model struct {
	sess *session.Session
	net  *network.Network
	now  func() time.Time

	people       []network.Person
	history      []network.Interaction
	showArchived bool

	columnFocus int // focusPeople or focusHistory
	width       int // Current terminal width (for layout)
	height      int // Current terminal height
	err         error

	dbFilename string
	watcher    *dbWatcher

	quitting bool

	personCursor int
	creating     bool
	createStep   int // 0 = editing name, 1 = editing nickname
	createError  string
	nameInput    textinput.Model
	nickInput    textinput.Model

	archiving         bool
	archiveConfirmIdx int // 0 = "Yes" selected, 1 = "No"

	historyCursor int

	// Animation state
	marqueeOffset int
	marqueeTimer  int
}

// Initialize TUI model
func initModel(sess *session.Session, dbPath string, watcher *dbWatcher) model {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.Focus()
	name.CharLimit = 256

	nick := textinput.New()
	nick.Placeholder = "Nickname (optional)"
	nick.CharLimit = 128

	return model{
		sess:       sess,
		now:        network.Today,
		dbFilename: filepath.Base(dbPath),
		watcher:    watcher,
		nameInput:  name,
		nickInput:  nick,
	}
}

func tick() tea.Cmd {
	return tea.Tick(marqueeTickDuration, func(t time.Time) tea.Msg {
		return t
	})
}

// Execute commands concurrently with no ordering guarantees during initialization
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadNetwork(m.sess), tick()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

func (m model) selected() (network.Person, bool) {
	if m.personCursor < 0 || m.personCursor >= len(m.people) {
		return network.Person{}, false
	}
	return m.people[m.personCursor], true
}

// withNetwork shows n, keeping keepID selected when it is still listed.
func (m model) withNetwork(n *network.Network, keepID network.PersonID) model {
	m.net = n
	if m.showArchived {
		m.people = network.ArchivedPeople(n)
	} else {
		m.people = network.ActivePeople(n)
	}

	m.personCursor = min(m.personCursor, max(len(m.people)-1, 0))
	for i, p := range m.people {
		if p.ID == keepID {
			m.personCursor = i
			break
		}
	}
	return m.withHistory()
}

func (m model) withHistory() model {
	m.history = nil
	m.historyCursor = 0
	if p, ok := m.selected(); ok {
		m.history = network.InteractionsWith(m.net, p.ID)
	}
	if len(m.history) == 0 && m.columnFocus == focusHistory {
		m.columnFocus = focusPeople
	}
	return m
}

func (m model) resetForm() model {
	m.creating = false
	m.createStep = 0
	m.createError = ""
	m.nameInput.Reset()
	m.nickInput.Reset()
	m.nickInput.Blur()
	m.nameInput.Focus()
	return m
}

// Processes events like window resize, errors, loaded data, and key presses
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case networkMsg:
		current, _ := m.selected()
		return m.withNetwork(msg.net, current.ID), nil

	case personChangedMsg:
		m = m.resetForm()
		m.archiving = false
		return m.withNetwork(msg.net, msg.person.ID), nil

	case formErrorMsg:
		m.createError = msg.err.Error()
		return m, nil

	case dbChangedMsg:
		if m.watcher == nil {
			return m, reloadNetwork(m.sess)
		}
		return m, tea.Batch(reloadNetwork(m.sess), m.watcher.wait())

	case tea.KeyMsg:
		if m.creating {
			return m.updateCreating(msg)
		}
		if m.archiving {
			return m.updateArchiving(msg)
		}
		return m.updateBrowsing(msg)

	case time.Time:
		// Update marquee animation every x ticks (adjust for speed)
		m.marqueeTimer++
		if m.marqueeTimer >= 10 {
			m.marqueeTimer = 0
			m.marqueeOffset++
		}
		return m, tick()
	}

	return m, nil
}

func (m model) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.createStep == 0 {
			if strings.TrimSpace(m.nameInput.Value()) == "" {
				m.createError = "Name cannot be empty"
				return m, nil
			}
			m.createError = ""
			m.createStep = 1
			m.nameInput.Blur()
			m.nickInput.Focus()
			return m, nil
		}
		return m, addPerson(m.sess, network.NewPerson{
			Name:     m.nameInput.Value(),
			Nickname: m.nickInput.Value(),
		})

	case tea.KeyEsc:
		return m.resetForm(), nil
	}

	var cmd tea.Cmd
	if m.createStep == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.nickInput, cmd = m.nickInput.Update(msg)
	}
	return m, cmd
}

func (m model) updateArchiving(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.archiveConfirmIdx = 0
	case "down", "j":
		m.archiveConfirmIdx = 1
	case "enter":
		p, ok := m.selected()
		if m.archiveConfirmIdx != 0 || !ok {
			m.archiving = false
			return m, nil
		}
		return m, setArchived(m.sess, p.ID, !p.Archived)
	case "esc":
		m.archiving = false
	}
	return m, nil
}

func (m model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		// Exit alt screen before quitting so the goodbye message displays
		return m, tea.Sequence(tea.ExitAltScreen, tea.Quit)

	case "up", "k":
		if m.columnFocus == focusPeople && m.personCursor > 0 {
			m.personCursor--
			return m.withHistory(), nil
		}
		if m.columnFocus == focusHistory && m.historyCursor > 0 {
			m.historyCursor--
		}

	case "down", "j":
		if m.columnFocus == focusPeople && m.personCursor < len(m.people)-1 {
			m.personCursor++
			return m.withHistory(), nil
		}
		if m.columnFocus == focusHistory && m.historyCursor < len(m.history)-1 {
			m.historyCursor++
		}

	case "right", "l":
		if m.columnFocus == focusPeople && len(m.history) > 0 {
			m.columnFocus = focusHistory
			m.historyCursor = 0
		}

	case "left", "h":
		m.columnFocus = focusPeople

	case "n":
		m = m.resetForm()
		m.creating = true

	case "a":
		if p, ok := m.selected(); ok && !p.IsSelf {
			m.archiveConfirmIdx = 1
			m.archiving = true
		}

	case "x":
		m.showArchived = !m.showArchived
		m.personCursor = 0
		m.columnFocus = focusPeople
		return m.withNetwork(m.net, network.PersonID{}), nil

	case "r":
		return m, reloadNetwork(m.sess)
	}
	return m, nil
}

// Assembles the UI string for each frame
func (m model) View() string {
	if m.quitting {
		return "Closing kith... Network saved.\n"
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}
	if m.net == nil {
		return "Loading network...\n"
	}

	titleBar := titleStyle.Width(m.width).Render("Kith - personal relationship network")

	leftWidth, middleWidth, rightWidth := columnWidths(m.width, m.columnFocus, false)
	m.nameInput.Width = rightWidth - bordersAndPaddingWidth
	m.nickInput.Width = rightWidth - bordersAndPaddingWidth

	quarterHeight := (m.height - bordersAndPaddingWidth) / 4
	panelHeight := m.height - 3

	peoplePanel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, true, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(0, 2).
		Width(leftWidth).Height(quarterHeight * 3).
		Render(m.peopleView(leftWidth))
	infoPanel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(1, 2).
		Width(leftWidth).Height(quarterHeight).
		Render(m.infoView())
	leftPanel := lipgloss.JoinVertical(lipgloss.Left, peoplePanel, infoPanel)

	middlePanel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(0, 2).
		Width(middleWidth).Height(panelHeight).
		Render(m.historyView(middleWidth))

	rightPanel := lipgloss.NewStyle().Padding(0, 2).
		Width(rightWidth).Height(panelHeight).
		Render(m.detailView(rightWidth))

	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, middlePanel, rightPanel)

	footerText := "\n↑/↓ navigate • ←/→ switch column • n new person • a archive • x archived list • r reload • q quit"
	footerBar := footerStyle.Width(m.width).Render(footerText)

	return titleBar + "\n\n" + columns + footerBar
}

func (m model) peopleView(width int) string {
	var b strings.Builder
	heading := "  People"
	if m.showArchived {
		heading = "  Archived people"
	}
	b.WriteString(subtitleStyle.Width(width - bordersAndPaddingWidth).Render(heading))
	b.WriteString("\n\n")

	if len(m.people) == 0 {
		b.WriteString("Nobody here yet. Press 'n' to add someone.\n")
		return b.String()
	}
	availableWidth := width - 2 - bordersAndPaddingWidth - 1
	for i, p := range m.people {
		name := p.Name
		if p.IsSelf {
			name += " (me)"
		}
		if i == m.personCursor {
			if m.columnFocus == focusPeople {
				name = marqueeText(name, m.marqueeOffset, availableWidth)
			} else {
				name = truncate(name, availableWidth)
			}
			b.WriteString(pointer(m.columnFocus == focusPeople) + selectedStyle.Render(lipgloss.NewStyle().MaxWidth(availableWidth).Render(name)) + "\n")
			continue
		}
		b.WriteString(pointer(false) + inactiveStyle.Render(truncate(name, availableWidth)) + "\n")
	}
	return b.String()
}

func (m model) infoView() string {
	due := len(network.PeopleNeedingReminder(m.net, m.now()))
	dueStatus := statusGood
	if due > 0 {
		dueStatus = statusBad
	}
	watchStatus := statusUnknown
	if m.watcher != nil {
		watchStatus = statusGood
	}
	return fmt.Sprintf("Database file: %v\nLive reload: %v\nReminders due: %v\n",
		TextStatusColorize(m.dbFilename, statusGood),
		TextStatusColorize(strconv.FormatBool(m.watcher != nil), watchStatus),
		TextStatusColorize(strconv.Itoa(due), dueStatus))
}

func (m model) historyView(width int) string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Width(width - bordersAndPaddingWidth).Render("  History"))
	b.WriteString("\n\n")

	if len(m.history) == 0 {
		b.WriteString("  No interactions yet.\n")
		return b.String()
	}
	availableWidth := width - 2 - bordersAndPaddingWidth - 1
	for i, in := range m.history {
		line := truncate(fmt.Sprintf("%s %s", in.Date.Format(time.DateOnly), strings.Join(in.Topics, ", ")), availableWidth)
		if i == m.historyCursor && m.columnFocus == focusHistory {
			b.WriteString(pointer(true) + selectedStyle.Render(line) + "\n")
			continue
		}
		b.WriteString(pointer(false) + inactiveStyle.Render(line) + "\n")
	}
	return b.String()
}

func field(name, value string) string {
	if value == "" {
		value = "-"
	}
	return labelStyle.Render(name+": ") + inactiveStyle.Render(value) + "\n"
}

func (m model) detailView(width int) string {
	var b strings.Builder
	subtitle := "Person"
	switch {
	case m.creating:
		subtitle = "Add Person"
	case m.archiving:
		subtitle = "Archive Person"
		if p, ok := m.selected(); ok && p.Archived {
			subtitle = "Restore Person"
		}
	case m.columnFocus == focusHistory:
		subtitle = "Interaction"
	}
	b.WriteString(subtitleStyle.Width(width - bordersAndPaddingWidth).Render(subtitle))
	b.WriteString("\n\n")

	p, ok := m.selected()
	switch {
	case m.creating:
		b.WriteString("Name: " + m.nameInput.View() + "\n")
		b.WriteString("Nickname: " + m.nickInput.View() + "\n\n")
		b.WriteString("(enter to submit, esc to cancel)")
		if m.createError != "" {
			b.WriteString("\n\n" + textRedStyle.Render(m.createError) + "\n")
		}

	case m.archiving && ok:
		b.WriteString("Name: " + textRedStyle.Render(p.Name) + "\n\n")
		yesOpt, noOpt := "Yes", "No"
		if m.archiveConfirmIdx == 0 {
			yesOpt = dangerSelectedStyle.Render(" >" + yesOpt)
			noOpt = inactiveStyle.Render("  " + noOpt)
		} else {
			yesOpt = inactiveStyle.Render("  " + yesOpt)
			noOpt = selectedStyle.Render(" >" + noOpt)
		}
		b.WriteString(fmt.Sprintf("%s\n%s\n\n", yesOpt, noOpt))
		b.WriteString("(enter to confirm, esc to cancel, up/down to switch)")

	case m.columnFocus == focusHistory && m.historyCursor < len(m.history):
		b.WriteString(interactionDetail(m.history[m.historyCursor]))

	case ok:
		b.WriteString(m.personDetail(p))

	default:
		b.WriteString("Select a person to view details.")
	}
	return b.String()
}

func interactionDetail(in network.Interaction) string {
	var b strings.Builder
	b.WriteString(field("Date", in.Date.Format(time.DateOnly)))
	b.WriteString(field("Medium", in.Medium.DisplayName()))
	b.WriteString(field("My location", in.MyLocation))
	b.WriteString(field("Their location", in.TheirLocation))
	b.WriteString(labelStyle.Render("Topics: ") + tagStyle.Render(strings.Join(in.Topics, " ")) + "\n\n")
	if in.Note != "" {
		b.WriteString(inactiveStyle.Render(in.Note))
	}
	return b.String()
}

func (m model) personDetail(p network.Person) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(labelStyle.Render("Name: ")+inactiveStyle.Render(p.Name)) + "\n\n")
	b.WriteString(field("Nickname", p.Nickname))
	if !p.Birthday.IsZero() {
		b.WriteString(field("Birthday", p.Birthday.Format(time.DateOnly)))
	}
	b.WriteString(field("Location", p.Location))
	b.WriteString(field("How we met", p.HowWeMet))

	var labels []string
	for _, l := range network.LabelsFor(m.net, p.ID) {
		labels = append(labels, l.Name)
	}
	labelLine := "-"
	if len(labels) > 0 {
		labelLine = strings.Join(labels, " ")
	}
	b.WriteString(labelStyle.Render("Labels: ") + tagStyle.Render(labelLine) + "\n")

	var circles []string
	for _, c := range network.CirclesFor(m.net, p.ID) {
		circles = append(circles, c.Name)
	}
	b.WriteString(field("Circles", strings.Join(circles, ", ")))

	if rs, ok := network.ReminderStatusFor(m.net, p.ID, m.now()); ok {
		status := statusGood
		if rs.Status.Due() {
			status = statusBad
		}
		b.WriteString(labelStyle.Render("Reminder: ") +
			TextStatusColorize(fmt.Sprintf("every %d days, %s", rs.ReminderDays, rs.Status), status) + "\n")
	}
	if days, ok := network.DaysSinceInteraction(m.net, p.ID, m.now()); ok {
		b.WriteString(field("Last contact", network.FormatDaysSince(days)))
	}

	if len(p.Contacts) > 0 {
		b.WriteString("\n")
		for _, c := range p.Contacts {
			name := network.ContactTypeName(m.net, c)
			if c.Label != "" {
				name += " (" + c.Label + ")"
			}
			b.WriteString(field(name, c.Display()))
		}
	}
	if p.Notes != "" {
		b.WriteString("\n" + inactiveStyle.Render(p.Notes))
	}
	return b.String()
}

// ShowTUI runs the browser until the user quits. When dbPath names a file
// the view reloads whenever that file changes.
func ShowTUI(sess *session.Session, dbPath string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	var watcher *dbWatcher
	if dbPath != "" && dbPath != ":memory:" {
		w, err := newDBWatcher(dbPath, logger.Named("tui"))
		if err != nil {
			logger.Warn("live reload disabled", zap.String("db", dbPath), zap.Error(err))
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	p := tea.NewProgram(initModel(sess, dbPath, watcher), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
