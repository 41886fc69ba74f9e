package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DashboardModel shows the pending review queue.
type DashboardModel struct {
	Session *Session
	Table   table.Model
	Photos  []PendingPhoto
	Stats   *Stats
	Reason  textinput.Model
	// rejecting holds the photo id while the reason prompt is open.
	rejecting string
	Status    string
	Err       error
}

type queueLoadedMsg struct {
	photos []PendingPhoto
	stats  *Stats
	err    error
}

type actionDoneMsg struct {
	status string
	err    error
}

func NewDashboardModel(s *Session, width, height int) DashboardModel {
	columns := []table.Column{
		{Title: "Photo ID", Width: 36},
		{Title: "Title", Width: 30},
		{Title: "Owner", Width: 16},
		{Title: "Category", Width: 10},
		{Title: "Submitted", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-12, 5)),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	reason := textinput.New()
	reason.Placeholder = "No reason provided"
	reason.Prompt = "Reason: "
	reason.CharLimit = 500

	return DashboardModel{Session: s, Table: t, Reason: reason}
}

func (m DashboardModel) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m DashboardModel) refreshCmd() tea.Cmd {
	s := m.Session
	return func() tea.Msg {
		ctx := context.Background()
		photos, err := s.Pending(ctx)
		if err != nil {
			return queueLoadedMsg{err: err}
		}
		stats, err := s.Stats(ctx)
		return queueLoadedMsg{photos: photos, stats: stats, err: err}
	}
}

func (m DashboardModel) actionCmd(status string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{status: status, err: fn(context.Background())}
	}
}

func (m DashboardModel) selectedID() string {
	row := m.Table.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case queueLoadedMsg:
		m.Err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.Photos = msg.photos
		m.Stats = msg.stats
		rows := make([]table.Row, 0, len(msg.photos))
		for _, p := range msg.photos {
			rows = append(rows, table.Row{p.ID, p.Title, p.Owner(), p.Category, p.CreatedAt.Local().Format("2006-01-02 15:04")})
		}
		m.Table.SetRows(rows)
		return m, nil

	case actionDoneMsg:
		m.Err = msg.err
		if msg.err == nil {
			m.Status = msg.status
		}
		return m, m.refreshCmd()

	case tea.KeyMsg:
		if m.rejecting != "" {
			return m.updateReason(msg)
		}
		id := m.selectedID()
		s := m.Session
		switch msg.String() {
		case "r":
			m.Status = ""
			return m, m.refreshCmd()
		case "a":
			if id != "" {
				return m, m.actionCmd("Approved "+id, func(ctx context.Context) error { return s.Approve(ctx, id) })
			}
		case "x":
			if id != "" {
				m.rejecting = id
				m.Reason.SetValue("")
				m.Reason.Focus()
				return m, textinput.Blink
			}
		case "D":
			if id != "" {
				return m, m.actionCmd("Deleted "+id, func(ctx context.Context) error { return s.DeletePhoto(ctx, id) })
			}
		case "q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m DashboardModel) updateReason(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.rejecting = ""
		m.Reason.Blur()
		return m, nil
	case tea.KeyEnter:
		id, reason, s := m.rejecting, strings.TrimSpace(m.Reason.Value()), m.Session
		m.rejecting = ""
		m.Reason.Blur()
		return m, m.actionCmd("Rejected "+id, func(ctx context.Context) error { return s.Reject(ctx, id, reason) })
	}
	var cmd tea.Cmd
	m.Reason, cmd = m.Reason.Update(msg)
	return m, cmd
}

func (m DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Review queue - %d pending", len(m.Photos))))
	b.WriteString("  " + blurredStyle.Render("signed in as "+m.Session.Username()) + "\n\n")
	if m.Stats != nil {
		b.WriteString(statsStyle.Render(fmt.Sprintf("users %d  photos %d  approved %d  pending %d  comments %d",
			m.Stats.TotalUsers, m.Stats.TotalPhotos, m.Stats.ApprovedPhotos, m.Stats.PendingPhotos, m.Stats.TotalComments)))
		b.WriteString("\n")
	}
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")
	if m.rejecting != "" {
		b.WriteString(m.Reason.View() + "\n")
		b.WriteString(blurredStyle.Render("Enter to reject, Esc to cancel"))
	} else {
		b.WriteString(blurredStyle.Render("a approve  x reject  D delete  r refresh  q quit"))
	}
	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
