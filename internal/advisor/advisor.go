// Package advisor provides canned caffeine guidance. It is a rule-based
// presentation stub behind a provider interface, not an inference engine.
package advisor

import (
	"fmt"
	"strings"

	"CaffeineSentinel/internal/model"
)

// Snapshot is the accounting context a provider answers from.
type Snapshot struct {
	CurrentMg   int
	DailyLimit  int
	RemainingMg int
	Status      model.Status
	Drinks      int
}

// Provider produces a reply to a free-form user question.
type Provider interface {
	Reply(question string, snap Snapshot) string
}

// RuleBased matches keywords in the question against a fixed set of topics.
type RuleBased struct{}

func NewRuleBased() *RuleBased { return &RuleBased{} }

func (r *RuleBased) Reply(question string, snap Snapshot) string {
	q := strings.ToLower(question)

	switch {
	case containsAny(q, "intake", "how much", "consumed"):
		return r.intakeReply(snap)
	case containsAny(q, "reduce", "cut", "less"):
		return "Cut back gradually: drop 10-20% per week, swap in decaf, drink plenty of water, and keep a regular sleep schedule. Tapering slowly minimizes withdrawal symptoms."
	case containsAny(q, "timing", "when", "time"):
		return "Best windows for caffeine: 9:30-11:30 when cortisol dips, or 13:00-17:00 against the afternoon slump. Avoid it after 18:00 since caffeine can affect you for up to 6 hours."
	case containsAny(q, "recommend", "drink", "suggest"):
		return r.recommendReply(snap)
	case containsAny(q, "side effect", "symptom"):
		return "Too much caffeine can cause anxiety, tremors, insomnia, elevated heart rate, and headaches. Staying under 400mg per day avoids most of these."
	case containsAny(q, "thank", "thanks"):
		return "Anytime! Ask whenever you have a caffeine question."
	case containsAny(q, "hello", "hi ", "hey"):
		return "Hello! What would you like to know about your caffeine intake?"
	case containsAny(q, "status", "today", "summary"):
		return fmt.Sprintf("Today: %dmg of %dmg consumed over %d drinks, %dmg remaining. Current band: %s.",
			snap.CurrentMg, snap.DailyLimit, snap.Drinks, snap.RemainingMg, snap.Status)
	default:
		return "Could you be more specific? I can help with your intake so far, timing, drink recommendations, cutting back, and side effects."
	}
}

func (r *RuleBased) intakeReply(snap Snapshot) string {
	percentage := 0
	if snap.DailyLimit > 0 {
		percentage = snap.CurrentMg * 100 / snap.DailyLimit
	}
	var note string
	switch snap.Status {
	case model.StatusSafe:
		note = "You still have plenty of headroom for an afternoon cup."
	case model.StatusCaution:
		note = "You are in a moderate range; choose your next drink carefully."
	default:
		note = "You are close to the daily limit; better to stop here today."
	}
	return fmt.Sprintf("You have consumed %dmg so far, %d%% of the %dmg daily limit. %s",
		snap.CurrentMg, percentage, snap.DailyLimit, note)
}

func (r *RuleBased) recommendReply(snap Snapshot) string {
	var options string
	switch {
	case snap.RemainingMg >= 150:
		options = "an americano (75-150mg), a cold brew (150-200mg), or green tea (30mg)"
	case snap.RemainingMg >= 75:
		options = "an americano (75mg), a latte (45-75mg), or green tea (30mg)"
	case snap.RemainingMg > 0:
		options = "a decaf latte, green tea (30mg), or herbal tea (0mg)"
	default:
		options = "decaf drinks, herbal tea, or water"
	}
	return fmt.Sprintf("With %dmg left of your daily limit, try %s.", snap.RemainingMg, options)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
