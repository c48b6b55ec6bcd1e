package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"questrank/internal/engine"
	"questrank/internal/ui"
)

const (
	clockInterval = time.Second
	sweepInterval = time.Minute
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	now      time.Time
	st       engine.AppState
	selected int

	lastLog string
}

// clockMsg repaints running timers and countdowns.
type clockMsg time.Time

// sweepMsg triggers rollover, the bedtime penalty and challenge refresh.
type sweepMsg time.Time

type actionMsg struct {
	label string
	res   engine.Result
	err   error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		now:     svc.Now(),
		st:      svc.State(),
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(clockCmd(), m.sweepCmd())
}

func clockCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func (m boardModel) sweepCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Tick(m.ctx)
		return actionMsg{label: "sweep", res: res, err: err}
	}
}

func scheduleSweep() tea.Cmd {
	return tea.Tick(sweepInterval, func(t time.Time) tea.Msg { return sweepMsg(t) })
}

func (m boardModel) actionCmd(label string, fn func(context.Context) (engine.Result, error)) tea.Cmd {
	return func() tea.Msg {
		res, err := fn(m.ctx)
		return actionMsg{label: label, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case clockMsg:
		m.now = m.svc.Now()
		return m, clockCmd()
	case sweepMsg:
		return m, m.sweepCmd()
	case actionMsg:
		m.now = m.svc.Now()
		m.st = m.svc.State()
		m.lastLog = describeAction(msg)
		// A failed sweep is reported in the log line and retried on the next tick.
		if msg.label == "sweep" {
			return m, scheduleSweep()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.st.Quests)-1 {
			m.selected++
		}
		return m, nil
	case "b":
		return m, m.actionCmd("boss", m.svc.ToggleBoss)
	case "w":
		return m, m.actionCmd("weekly", m.svc.CompleteWeekly)
	case "v":
		return m, m.actionCmd("reveal", m.svc.RevealMystery)
	case "x":
		return m, m.actionCmd("reroll", m.svc.RerollMystery)
	case "o":
		return m, m.actionCmd("mystery", m.svc.CompleteMystery)
	}

	q, ok := m.selectedQuest()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "c", " ":
		return m, m.actionCmd("toggle "+q.Name, func(ctx context.Context) (engine.Result, error) {
			return m.svc.ToggleQuest(ctx, q.ID)
		})
	case "s":
		label, fn := timerAction(m.svc, q)
		return m, m.actionCmd(label+" "+q.Name, fn)
	case "f":
		return m, m.actionCmd("finish "+q.Name, func(ctx context.Context) (engine.Result, error) {
			return m.svc.CompleteQuest(ctx, q.ID)
		})
	}
	return m, nil
}

// timerAction picks start, pause or resume from the quest's timer status.
func timerAction(svc *engine.Service, q engine.Quest) (string, func(context.Context) (engine.Result, error)) {
	switch q.TimerStatus {
	case engine.TimerActive:
		return "pause", func(ctx context.Context) (engine.Result, error) { return svc.PauseTimer(ctx, q.ID) }
	case engine.TimerPaused:
		return "resume", func(ctx context.Context) (engine.Result, error) { return svc.ResumeTimer(ctx, q.ID) }
	default:
		return "start", func(ctx context.Context) (engine.Result, error) { return svc.StartTimer(ctx, q.ID) }
	}
}

func (m boardModel) selectedQuest() (engine.Quest, bool) {
	if m.selected < 0 || m.selected >= len(m.st.Quests) {
		return engine.Quest{}, false
	}
	return m.st.Quests[m.selected], true
}

func describeAction(msg actionMsg) string {
	if msg.err != nil {
		var rej *engine.RejectedError
		if errors.As(msg.err, &rej) {
			return ui.Warn.Render(fmt.Sprintf("%s refused: %s", msg.label, rej.Reason))
		}
		return ui.Bad.Render(fmt.Sprintf("%s failed: %v", msg.label, msg.err))
	}
	if msg.label == "sweep" {
		return fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
	}
	if !msg.res.Changed {
		return fmt.Sprintf("%s: nothing to do.", msg.label)
	}
	line := fmt.Sprintf("%s: %s", msg.label, ui.SignedXP(msg.res.Credited))
	if msg.res.Repaid > 0 {
		line += ui.Muted.Render(fmt.Sprintf(" (repaid %d debt)", msg.res.Repaid))
	}
	return line
}

func (m boardModel) View() string {
	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		leftW = max(18, min(leftW, m.width/2))
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	sum := engine.Summarize(m.st, m.now)
	win := engine.ViewDayWindow(m.st.Settings, m.now)
	parts := []string{
		ui.Title.Render("questrank"),
		fmt.Sprintf("Rank %s %d%%", ui.RankBadge(string(sum.OverallRank)), sum.OverallProgressPct),
		ui.FormatXP(sum.TotalXP),
		fmt.Sprintf("%s %dd (+%d%%)", ui.IconFire, sum.StreakDays, sum.StreakBonusPct),
	}
	if win.WithinWindow {
		parts = append(parts, fmt.Sprintf("%s %s left %s", ui.IconMoon, win.TimeLeft, ui.ProgressBar(win.ProgressFraction, 12)))
	} else {
		parts = append(parts, ui.Warn.Render(ui.IconMoon+" outside day window"))
	}
	if win.PhoneCutoffMinutesLeft >= 0 {
		parts = append(parts, fmt.Sprintf("phone off in %dm", win.PhoneCutoffMinutesLeft))
	}
	return strings.Join(parts, " | ")
}

func (m boardModel) renderSidebar() string {
	sum := engine.Summarize(m.st, m.now)
	lines := []string{"Today"}
	lines = append(lines, fmt.Sprintf("- earned %d", sum.TodayEarnedXP))
	lines = append(lines, fmt.Sprintf("- debt %d (total %d)", sum.TodayDebt, sum.OutstandingDebt))
	boss := "pending"
	if sum.BossDefeated {
		boss = "defeated"
	}
	lines = append(lines, fmt.Sprintf("- boss %s", boss))
	lines = append(lines, "")

	lines = append(lines, "Weekly")
	if wv := engine.ViewWeekly(m.st, m.now); wv != nil {
		lines = append(lines, "- "+wv.Challenge.Title)
		lines = append(lines, "- "+wv.Challenge.Target)
		lines = append(lines, fmt.Sprintf("- %d XP, %s, %s", wv.Challenge.XPReward, string(wv.Challenge.Status), wv.TimeRemaining))
	} else {
		lines = append(lines, "- none")
	}
	lines = append(lines, "")

	lines = append(lines, "Mystery")
	if mv := engine.ViewMystery(m.st, m.now); mv != nil {
		lines = append(lines, "- "+mv.Description)
		lines = append(lines, fmt.Sprintf("- %d XP, %s, %s", mv.Box.XPReward, string(mv.Box.Status), mv.TimeRemaining))
	} else {
		lines = append(lines, "- none")
	}
	lines = append(lines, "")

	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: toggle done")
	lines = append(lines, "- s: start/pause timer")
	lines = append(lines, "- f: finish timer")
	lines = append(lines, "- b: boss, w: weekly")
	lines = append(lines, "- v/x/o: reveal/reroll/claim")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	views := engine.ViewQuests(m.st, m.now)
	out := []string{"Quests"}
	if len(views) == 0 {
		out = append(out, "(empty, add one with `qr add`)")
		return strings.Join(out, "\n")
	}
	for i, v := range views {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s %s %s", cursor, ui.Check(v.DoneToday), ui.RankBadge(string(v.Rank)), v.Quest.Name, ui.ProgressBar(v.ProgressFraction, 10))
		if v.IsCapped {
			line += ui.Gold.Render(" capped")
		} else {
			line += ui.Muted.Render(fmt.Sprintf(" next +%d", v.NextAwardPreview))
		}
		if !v.ScheduledToday {
			line += ui.Muted.Render(" (rest day)")
		}
		if v.Quest.TimerStatus == engine.TimerActive || v.Quest.TimerStatus == engine.TimerPaused {
			line += fmt.Sprintf(" %s %s/%dm %s", ui.IconTimer, formatElapsed(v.TimerElapsed), engine.TargetMinutes(v.Quest), ui.StatusText(string(v.Quest.TimerStatus)))
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func formatElapsed(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
