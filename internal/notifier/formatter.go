package notifier

import (
	"fmt"
	"strings"
	"time"

	"CaffeineSentinel/internal/decay"
	"CaffeineSentinel/internal/model"
)

// FormatNotification formats a recorder notification into a Telegram message.
func FormatNotification(n model.Notification) string {
	var b strings.Builder

	switch n.Kind {
	case model.NotifyRecorded:
		b.WriteString(fmt.Sprintf("☕ <b>%s</b>\n", n.Title))
		b.WriteString(fmt.Sprintf("+%dmg caffeine\n", n.AmountMg))
		b.WriteString(fmt.Sprintf("Today: %dmg / %dmg\n", n.CurrentMg, n.DailyLimit))
	case model.NotifyNearLimit:
		b.WriteString("⚠️ <b>Caffeine warning</b>\n\n")
		b.WriteString(fmt.Sprintf("You are approaching the daily limit: %dmg of %dmg.\n", n.CurrentMg, n.DailyLimit))
		b.WriteString("Consider monitoring further intake.\n")
	case model.NotifyExceeded:
		b.WriteString("🚨 <b>Daily limit exceeded</b>\n\n")
		b.WriteString(fmt.Sprintf("Total intake %dmg is over the recommended %dmg.\n", n.CurrentMg, n.DailyLimit))
	default:
		b.WriteString(fmt.Sprintf("<b>%s</b>\n%s\n", n.Title, n.Body))
	}

	return b.String()
}

// FormatStatus formats the current ledger snapshot for display.
func FormatStatus(state *model.LedgerState) string {
	status := model.StatusFor(state.CurrentIntake)
	remaining := state.DailyLimit - state.CurrentIntake
	if remaining < 0 {
		remaining = 0
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Caffeine status</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Intake: %dmg / %dmg\n", state.CurrentIntake, state.DailyLimit))
	b.WriteString(fmt.Sprintf("Remaining: %dmg\n", remaining))
	b.WriteString(fmt.Sprintf("Drinks: %d\n", len(state.Entries)))
	b.WriteString(fmt.Sprintf("Band: %s\n", statusLabel(status)))
	return b.String()
}

// FormatHistory lists today's recorded drinks, most recent last.
func FormatHistory(entries []model.IntakeEvent) string {
	if len(entries) == 0 {
		return "No drinks recorded today."
	}
	var b strings.Builder
	b.WriteString("🧾 <b>Today's drinks</b>\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%s  %s %s  %dmg\n",
			e.DrinkedAt.Format("15:04"), e.BrandName, e.MenuName, e.CaffeineMg))
	}
	return b.String()
}

// FormatCurve renders the projected decay curve at whole-hour samples.
func FormatCurve(currentMg int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📉 <b>Projected caffeine</b> (now %dmg, half-life %.0fh)\n\n", currentMg, decay.HalfLifeHours))
	for h := 0; h <= int(decay.HorizonHours); h++ {
		b.WriteString(fmt.Sprintf("+%2dh: %dmg\n", h, decay.At(currentMg, float64(h))))
	}
	return b.String()
}

// FormatOpsSummary formats the daily server-side activity report.
func FormatOpsSummary(stats *model.DailyStats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 <b>Daily summary</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Active members: %d\n", stats.ActiveMembers))
	b.WriteString(fmt.Sprintf("Intakes recorded: %d\n", stats.IntakeCount))
	b.WriteString(fmt.Sprintf("Total caffeine: %dmg\n", stats.TotalMg))
	b.WriteString(fmt.Sprintf("Members over limit: %d\n", stats.OverLimit))
	return b.String()
}

func statusLabel(s model.Status) string {
	switch s {
	case model.StatusSafe:
		return "safe ✅"
	case model.StatusCaution:
		return "caution ⚠️"
	default:
		return "high 🚨"
	}
}
