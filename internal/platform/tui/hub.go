package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-quest/internal/progression"
)

// Hub layout constants
const (
	xpBarWidth    = 30
	boardRows     = 10 // Leaderboard rows shown in the hub
	taskBarWidth  = 16
	maxFriendRows = 8
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// hubView renders the player's progression summary and the open panel.
func (m Model) hubView() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("F L A P P Y   Q U E S T", m.width)))
	b.WriteString("\n\n")

	b.WriteString(m.renderPlayer())
	b.WriteString("\n")

	if content := m.renderPanel(); content != "" {
		b.WriteString(panelStyle.Render(content))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderPlayer shows level, XP, streak and lifetime stats.
func (m Model) renderPlayer() string {
	stats := m.prog.Stats()

	name := m.prog.PlayerName()
	if name == "" {
		name = "anonymous (press n to set a name)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s   %s %s\n",
		labelStyle.Render("Player:"), valueStyle.Render(name),
		labelStyle.Render("Code:"), valueStyle.Render(m.prog.ReferralCode()))

	fmt.Fprintf(&b, "%s %s  %s  %s\n",
		labelStyle.Render("Level"), valueStyle.Render(fmt.Sprint(m.prog.Level())),
		xpBar(m.prog.LevelProgress(), xpBarWidth),
		labelStyle.Render(fmt.Sprintf("%d / %d XP", stats.XP, m.prog.XPForNextLevel())))

	checkIn := doneStyle.Render("checked in today")
	if m.prog.CanCheckIn() {
		checkIn = accentStyle.Render("c: daily check-in available")
	}
	fmt.Fprintf(&b, "%s %s  %s\n",
		labelStyle.Render("Streak:"), valueStyle.Render(fmt.Sprintf("%d days", stats.DailyStreak)), checkIn)

	tasks := m.prog.Tasks()
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		labelStyle.Render("High score:"), valueStyle.Render(fmt.Sprint(m.prog.HighScore())),
		labelStyle.Render("Games:"), valueStyle.Render(fmt.Sprint(stats.TotalGames)),
		labelStyle.Render("Tasks:"), valueStyle.Render(fmt.Sprintf("%d/%d", progression.CompletedCount(tasks), len(tasks))))

	social, rank := m.board.Social()
	rankText := "-"
	if rank > 0 {
		rankText = fmt.Sprintf("#%d", rank)
	}
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s   %s %s\n",
		labelStyle.Render("Players:"), valueStyle.Render(fmt.Sprint(social.TotalPlayers)),
		labelStyle.Render("Avg:"), valueStyle.Render(fmt.Sprint(social.AverageScore)),
		labelStyle.Render("Top:"), valueStyle.Render(fmt.Sprint(social.TopScore)),
		labelStyle.Render("Your rank:"), valueStyle.Render(rankText))

	return b.String()
}

// xpBar renders a fixed-width bar filled to fraction.
func xpBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(filled, width))
	return doneStyle.Render(strings.Repeat("█", filled)) +
		labelStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) renderPanel() string {
	switch m.panel {
	case panelTasks:
		return m.renderTasks()
	case panelBoard:
		return m.renderBoard()
	case panelFriends:
		return m.renderFriends()
	case panelName:
		return titleStyle.Render("Display name") + "\n\n" + m.input.View() + "\n\n" +
			labelStyle.Render("enter: save  esc: cancel")
	case panelShare:
		return m.renderShare()
	}
	return ""
}

func (m Model) renderTasks() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Weekly challenges"))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  week of %s", m.prog.Stats().WeekStartDate)))
	b.WriteString("\n\n")

	for _, t := range m.prog.Tasks() {
		mark := "[ ]"
		title := valueStyle.Render(t.Title)
		if t.Completed {
			mark = doneStyle.Render("[x]")
			title = doneStyle.Render(t.Title)
		}
		fmt.Fprintf(&b, "%s %s  %s %s  %s\n", mark, title,
			xpBar(t.Fraction(), taskBarWidth),
			labelStyle.Render(fmt.Sprintf("%d/%d", t.Progress, t.Target)),
			labelStyle.Render(fmt.Sprintf("+%d XP", t.Reward)))
		fmt.Fprintf(&b, "    %s\n", labelStyle.Render(t.Description))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderFriends() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Friends"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Your code:"), valueStyle.Render(m.prog.ReferralCode()))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Invite link:"), m.prog.InviteLink(m.cfg.Session.InviteURL))
	fmt.Fprintf(&b, "%s\n\n", labelStyle.Render(m.prog.InviteText()))

	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Use a code:"), m.input.View())

	friends := m.prog.Friends()
	if len(friends) == 0 {
		b.WriteString(emptyStyle.Render("No friends yet. Share your code!"))
	} else {
		start := max(0, len(friends)-maxFriendRows)
		for _, f := range friends[start:] {
			fmt.Fprintf(&b, "%s  %s  %s\n", valueStyle.Render(f.Name),
				labelStyle.Render(fmt.Sprintf("level %d", f.Level)),
				labelStyle.Render(fmt.Sprintf("best %d", f.BestScore)))
		}
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("enter: accept code  esc: close"))
	return b.String()
}

func (m Model) renderShare() string {
	score := m.prog.HighScore()
	if out, ok := m.ctrl.LastOutcome(); ok {
		score = out.Score
	}
	return titleStyle.Render("Share") + "\n\n" + progression.ShareText(score) + "\n" +
		m.prog.InviteLink(m.cfg.Session.InviteURL)
}

func (m Model) renderBoard() string {
	if m.board == nil || len(m.board.Top(boardRows)) == 0 {
		return emptyStyle.Render("No scores recorded yet.\nSet a name and play a game to get on the board!")
	}
	return titleStyle.Render("Leaderboard") + "\n\n" + m.table.View()
}

// newBoardTable creates the leaderboard table sized for width.
func newBoardTable(width int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 16},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 6},
		{Title: "Date", Width: 14},
	}
	if width < 60 {
		columns = columns[:4]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(boardRows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// refreshBoard reloads the table rows from the leaderboard.
func (m *Model) refreshBoard() {
	if m.board == nil {
		return
	}
	entries := m.board.Top(boardRows)
	wide := m.width >= 60

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Level),
		}
		if wide {
			row = append(row, e.Timestamp.Local().Format("Jan 02 15:04"))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}
