package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/joonho/ailearn/internal/events"
	"github.com/joonho/ailearn/internal/missions"
	"github.com/joonho/ailearn/internal/profile"
	"github.com/joonho/ailearn/internal/review"
)

// Color palette for terminal output.
var (
	colorXP      = lipgloss.Color("#F59E0B") // Amber
	colorLevel   = lipgloss.Color("#8B5CF6") // Purple
	colorSuccess = lipgloss.Color("#22C55E") // Green
	colorStreak  = lipgloss.Color("#F97316") // Orange
	colorDim     = lipgloss.Color("#94A3B8") // Slate
)

var (
	styleXP      = lipgloss.NewStyle().Foreground(colorXP).Bold(true)
	styleLevel   = lipgloss.NewStyle().Foreground(colorLevel).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess)
	styleStreak  = lipgloss.NewStyle().Foreground(colorStreak).Bold(true)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// printEvent renders engine events as toast-style lines. The engine emits
// them after each committed state change.
func printEvent(ev events.Event) {
	switch e := ev.(type) {
	case events.XPEarned:
		fmt.Println(styleXP.Render(fmt.Sprintf("+%d XP", e.Amount)), styleDim.Render("("+e.Source+")"))
	case events.LevelUp:
		fmt.Println(styleLevel.Render(fmt.Sprintf("🎉 Level up! You are now level %d", e.NewLevel)))
	case events.PointsEarned:
		fmt.Println(styleSuccess.Render(fmt.Sprintf("+%d points", e.Amount)))
	case events.BadgeUnlocked:
		fmt.Println(styleSuccess.Render(fmt.Sprintf("🏆 Badge unlocked: %s (%s)", e.Name, e.Rarity)))
	case events.AchievementCompleted:
		fmt.Println(styleSuccess.Render(fmt.Sprintf("✨ Achievement completed: %s", e.Name)))
	case events.StreakMilestone:
		fmt.Println(styleStreak.Render(fmt.Sprintf("🔥 %d-day study streak!", e.Days)))
	case events.MissionCompleted:
		fmt.Println(styleSuccess.Render(fmt.Sprintf("✅ Mission complete: %s", e.Name)))
	case events.GoalCompleted:
		fmt.Println(styleSuccess.Render(fmt.Sprintf("🎯 Goal reached: %s", e.Name)))
	}
}

func renderProfile(p *profile.UserProfile) string {
	var b strings.Builder

	next := profile.CumulativeXPForLevel(p.Level + 1)
	toNext := next - p.TotalXP

	b.WriteString(styleHeader.Render("Profile") + "\n")
	b.WriteString(fmt.Sprintf("  Level:   %s\n", styleLevel.Render(fmt.Sprintf("%d", p.Level))))
	b.WriteString(fmt.Sprintf("  XP:      %s %s\n",
		styleXP.Render(fmt.Sprintf("%d", p.TotalXP)),
		styleDim.Render(fmt.Sprintf("(%d into level, %d to next)", p.XP, toNext))))
	b.WriteString(fmt.Sprintf("  Points:  %d\n", p.Points))
	b.WriteString(fmt.Sprintf("  Streak:  %s %s\n",
		styleStreak.Render(fmt.Sprintf("%d days", p.StreakDays)),
		styleDim.Render(fmt.Sprintf("(best %d)", p.MaxStreak))))
	b.WriteString(fmt.Sprintf("  Badges:  %d\n", len(p.Badges)))

	return b.String()
}

func renderAchievements(list []profile.GameAchievement) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Achievements") + "\n")
	for _, a := range list {
		mark := styleDim.Render("○")
		if a.IsCompleted {
			mark = styleSuccess.Render("●")
		}
		b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			mark, a.Icon, a.Name,
			styleDim.Render(fmt.Sprintf("%d/%d", a.Progress, a.MaxProgress))))
	}
	return b.String()
}

func renderMissions(list []missions.DailyMission) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Today's Missions") + "\n")
	for _, m := range list {
		mark := styleDim.Render("○")
		if m.IsCompleted {
			mark = styleSuccess.Render("●")
		}
		b.WriteString(fmt.Sprintf("  %s %s %s %s %s\n",
			mark, m.Icon, m.Name,
			styleDim.Render(fmt.Sprintf("%d/%d", m.Current, m.Target)),
			styleDim.Render(fmt.Sprintf("(+%d XP, +%d pts)", m.Reward.XP, m.Reward.Points))))
	}
	return b.String()
}

func renderBadges(list []profile.Badge) string {
	if len(list) == 0 {
		return styleDim.Render("No badges unlocked yet.") + "\n"
	}
	var b strings.Builder
	b.WriteString(styleHeader.Render("Badges") + "\n")
	for _, badge := range list {
		b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			badge.Icon, badge.Name,
			styleDim.Render("["+badge.Rarity+"]"),
			styleDim.Render(badge.UnlockedAt.Format("2006-01-02"))))
	}
	return b.String()
}

func renderDue(list []review.Item) string {
	if len(list) == 0 {
		return styleSuccess.Render("Nothing due for review. 🎉") + "\n"
	}
	var b strings.Builder
	b.WriteString(styleHeader.Render(fmt.Sprintf("Due for Review (%d)", len(list))) + "\n")
	for _, it := range list {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			it.ID,
			styleDim.Render(fmt.Sprintf("[%s]", it.Type)),
			styleDim.Render(fmt.Sprintf("difficulty %d, due %s", it.Difficulty, it.NextReview.Format("2006-01-02")))))
	}
	return b.String()
}
