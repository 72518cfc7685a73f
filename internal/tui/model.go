// Package tui is a read-only interactive browser over the enumerated
// bus services.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dbusls/internal/app"
)

// Controller defines the subset of app.App behaviour the TUI needs.
type Controller interface {
	Enumerate(app.EnumerateOptions) ([]*app.Service, error)
}

// Model represents the Bubble Tea state.
type Model struct {
	controller Controller
	opts       app.EnumerateOptions

	list list.Model

	statusMsg string

	err     error
	loading bool

	width  int
	height int

	lastUpdated time.Time
}

// New constructs a TUI model with default styles.
func New(ctrl Controller, opts app.EnumerateOptions) *Model {
	delegate := list.NewDefaultDelegate()
	lst := list.New([]list.Item{}, delegate, 0, 0)
	lst.Title = "Bus services"
	lst.SetShowHelp(false)
	lst.DisableQuitKeybindings()

	return &Model{
		controller: ctrl,
		opts:       opts,
		list:       lst,
		statusMsg:  "Scanning bus…",
		loading:    true,
	}
}

// Run spins up the Bubble Tea program with sensible defaults.
func Run(ctrl Controller, opts app.EnumerateOptions) error {
	m := New(ctrl, opts)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return loadServicesCmd(m.controller, m.opts)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.height > 4 {
			m.list.SetSize(msg.Width, msg.Height/2)
		}

	case servicesLoadedMsg:
		m.loading = false
		m.err = nil
		items := make([]list.Item, 0, len(msg.services))
		for _, svc := range msg.services {
			items = append(items, serviceItem{svc})
		}
		m.list.SetItems(items)
		m.lastUpdated = time.Now()
		m.statusMsg = fmt.Sprintf("%d services. Press r to rescan, q to quit.", len(msg.services))

	case errMsg:
		m.loading = false
		m.err = msg.err

	case tea.KeyMsg:
		// While the filter input is focused every key belongs to it.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.statusMsg = "Scanning bus…"
			return m, loadServicesCmd(m.controller, m.opts)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	statusStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	if m.err != nil {
		statusStyle = statusStyle.Foreground(lipgloss.Color("203"))
	}
	b.WriteString(statusStyle.Render(m.statusMsg))
	b.WriteByte('\n')

	if m.loading {
		b.WriteString("Scanning…\n")
	} else if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteByte('\n')
	}

	if len(m.list.Items()) == 0 && !m.loading && m.err == nil {
		b.WriteString("No services found.\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteByte('\n')
	}

	if current := m.currentService(); current != nil {
		detailStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginBottom(1)
		b.WriteString(detailStyle.Render(serviceDetail(current)))
		b.WriteByte('\n')
	}

	help := "Commands: q quit • r rescan"
	if !m.lastUpdated.IsZero() {
		help += fmt.Sprintf(" • last scan %s", m.lastUpdated.Format(time.Kitchen))
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func serviceDetail(svc *app.Service) string {
	var b strings.Builder
	if svc.HasExecutable {
		fmt.Fprintf(&b, "%s (pid %d)", svc.Executable, svc.Pid)
	} else {
		b.WriteString("unknown process")
	}
	paths := make([]string, 0, len(svc.Objects))
	for path := range svc.Objects {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		fmt.Fprintf(&b, "\n%s", path)
		for _, iface := range svc.Objects[path] {
			fmt.Fprintf(&b, "\n  %s", iface)
		}
	}
	return b.String()
}

// serviceItem adapts app.Service to the bubbles list item interface.
type serviceItem struct {
	service *app.Service
}

func (s serviceItem) Title() string {
	state := "running"
	if !s.service.Activated {
		state = "activatable"
	}
	return fmt.Sprintf("%s (%s)", s.service.Name, state)
}

func (s serviceItem) Description() string {
	if !s.service.HasExecutable {
		return fmt.Sprintf("objects=%d | unknown process", len(s.service.Objects))
	}
	return fmt.Sprintf("objects=%d | pid=%d %s", len(s.service.Objects), s.service.Pid, s.service.Executable)
}

func (s serviceItem) FilterValue() string {
	return s.service.Name + " " + s.service.Executable
}

func (m *Model) currentService() *app.Service {
	// The list may be filtered, so ask it for the selected item
	// rather than indexing anything by position.
	item, ok := m.list.SelectedItem().(serviceItem)
	if !ok {
		return nil
	}
	return item.service
}

type servicesLoadedMsg struct {
	services []*app.Service
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func loadServicesCmd(ctrl Controller, opts app.EnumerateOptions) tea.Cmd {
	return func() tea.Msg {
		services, err := ctrl.Enumerate(opts)
		if err != nil {
			return errMsg{err}
		}
		return servicesLoadedMsg{services: services}
	}
}
