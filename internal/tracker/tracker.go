package tracker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"CaffeineSentinel/internal/advisor"
	"CaffeineSentinel/internal/ledger"
	"CaffeineSentinel/internal/model"
	"CaffeineSentinel/internal/notifier"
)

// Tracker hosts the client-side ledger and answers chat commands against it.
type Tracker struct {
	Cron    *cron.Cron
	Ledger  *ledger.Ledger
	Advisor advisor.Provider
	Ctx     context.Context
}

// NewTracker creates a tracker around an already loaded ledger. Gateway
// writes issued while handling commands are cancelled with ctx.
func NewTracker(ctx context.Context, l *ledger.Ledger, a advisor.Provider) *Tracker {
	return &Tracker{
		Cron:    cron.New(cron.WithSeconds()),
		Ledger:  l,
		Advisor: a,
		Ctx:     ctx,
	}
}

// Start begins the minute tick that rolls the ledger over at midnight.
func (t *Tracker) Start() error {
	_, err := t.Cron.AddFunc("0 * * * * *", func() {
		if t.Ledger.CheckAndReset(time.Now()) {
			log.Println("[INFO] daily ledger reset")
		}
	})
	if err != nil {
		return fmt.Errorf("register reset tick: %w", err)
	}
	t.Cron.Start()
	log.Println("[INFO] tracker started")
	return nil
}

// Stop stops the reset tick.
func (t *Tracker) Stop() {
	t.Cron.Stop()
	log.Println("[INFO] tracker stopped")
}

// HandleCommand processes a chat command and returns the reply text.
// An empty reply means the notifier already delivered the outcome.
func (t *Tracker) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return t.helpText()
	}

	switch fields[0] {
	case "/status":
		return t.statusReply()
	case "/today":
		return t.todayReply()
	case "/add":
		return t.addReply(fields)
	case "/curve":
		return t.curveReply()
	case "/advice":
		return t.adviceReply(strings.TrimSpace(strings.TrimPrefix(command, "/advice")))
	default:
		return t.helpText()
	}
}

func (t *Tracker) statusReply() string {
	state, err := t.Ledger.Snapshot()
	if err != nil {
		return fmt.Sprintf("Ledger unavailable: %v", err)
	}
	return notifier.FormatStatus(state)
}

func (t *Tracker) todayReply() string {
	entries, err := t.Ledger.Entries()
	if err != nil {
		return fmt.Sprintf("Ledger unavailable: %v", err)
	}
	return notifier.FormatHistory(entries)
}

// addReply records an intake. Format: /add <brand> <drink name...> <mg>.
func (t *Tracker) addReply(fields []string) string {
	if len(fields) < 4 {
		return "Usage: /add <brand> <drink name> <mg>\nExample: /add Starbucks Caffe Americano 150"
	}

	mg, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return fmt.Sprintf("%q is not a caffeine amount in mg", fields[len(fields)-1])
	}
	brand := fields[1]
	drink := strings.Join(fields[2:len(fields)-1], " ")

	ctx, cancel := context.WithTimeout(t.Ctx, 30*time.Second)
	defer cancel()
	_, err = t.Ledger.Record(ctx, brand, drink, mg, nil)
	if err != nil {
		var vErr *ledger.ValidationError
		if errors.As(err, &vErr) {
			return fmt.Sprintf("Cannot record that: %s %s.", vErr.Field, vErr.Reason)
		}
		var pErr *ledger.PersistenceError
		if errors.As(err, &pErr) {
			log.Printf("[WARN] intake recorded locally only: %v", pErr)
			return "Recorded locally, but syncing to the server failed. It will show up here but not in your server history."
		}
		return fmt.Sprintf("Recording failed: %v", err)
	}

	// The notifier already sent the confirmation and any warnings.
	return ""
}

func (t *Tracker) curveReply() string {
	intake, err := t.Ledger.CurrentIntake()
	if err != nil {
		return fmt.Sprintf("Ledger unavailable: %v", err)
	}
	return notifier.FormatCurve(intake)
}

func (t *Tracker) adviceReply(question string) string {
	state, err := t.Ledger.Snapshot()
	if err != nil {
		return fmt.Sprintf("Ledger unavailable: %v", err)
	}
	remaining := state.DailyLimit - state.CurrentIntake
	if remaining < 0 {
		remaining = 0
	}
	if question == "" {
		question = "status"
	}
	return t.Advisor.Reply(question, advisor.Snapshot{
		CurrentMg:   state.CurrentIntake,
		DailyLimit:  state.DailyLimit,
		RemainingMg: remaining,
		Status:      model.StatusFor(state.CurrentIntake),
		Drinks:      len(state.Entries),
	})
}

func (t *Tracker) helpText() string {
	return `Commands:
/status - current intake and remaining budget
/today - today's recorded drinks
/add <brand> <drink name> <mg> - record a drink
/curve - projected caffeine over the next 12 hours
/advice <question> - ask about your caffeine habits`
}
