package scheduler

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CaffeineSentinel/internal/model"
	"CaffeineSentinel/internal/store"
)

type captureNotifier struct {
	mu     sync.Mutex
	events []model.Notification
}

func (c *captureNotifier) Notify(n model.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, n)
	return nil
}

func newTestScheduler(t *testing.T) (*Scheduler, *store.Store, *captureNotifier) {
	t.Helper()
	st, err := store.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cn := &captureNotifier{}
	return NewScheduler(context.Background(), st, cn), st, cn
}

func seedMember(t *testing.T, st *store.Store, username string, mg int, at time.Time) {
	t.Helper()
	id, err := st.CreateMember(context.Background(),
		&model.Member{Username: username, Password: "hash", Name: "Tester"},
		&model.CaffeineProfile{BirthDate: "2000-01-15", WeightKg: 60, Gender: "male", MaxCaffeine: 400},
	)
	require.NoError(t, err)
	require.NoError(t, st.AddIntake(context.Background(), id, &model.IntakeEvent{
		ID: uuid.NewString(), BrandName: "B", MenuName: "M", CaffeineMg: mg, DrinkedAt: at,
	}))
}

func TestRegisterAll(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	require.NoError(t, s.RegisterAll("0 * * * * *", "0 0 21 * * *"))
	assert.Error(t, s.RegisterAll("not a cron spec", "0 0 21 * * *"))
}

func TestResetSweep(t *testing.T) {
	s, st, _ := newTestScheduler(t)
	seedMember(t, st, "stale", 250, time.Now().AddDate(0, 0, -1))
	seedMember(t, st, "fresh", 100, time.Now())

	s.resetSweep()

	m, err := st.MemberByUsername(context.Background(), "stale")
	require.NoError(t, err)
	p, err := st.Profile(context.Background(), m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.CurrentCaffeine)

	m, err = st.MemberByUsername(context.Background(), "fresh")
	require.NoError(t, err)
	p, err = st.Profile(context.Background(), m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, 100, p.CurrentCaffeine)
}

func TestDailySummary(t *testing.T) {
	s, st, cn := newTestScheduler(t)
	seedMember(t, st, "drinker", 450, time.Now())

	s.dailySummary()

	require.Len(t, cn.events, 1)
	assert.Equal(t, model.NotifySummary, cn.events[0].Kind)
	assert.Contains(t, cn.events[0].Body, "450mg")
}
