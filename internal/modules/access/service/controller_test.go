package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"signal_bot/internal/models"
	stateservice "signal_bot/internal/modules/state/service"
	"signal_bot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mainAdmin = "304403982"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)}
}

func TestMain(m *testing.M) {
	logger.InitNop()
	m.Run()
}

func TestMainAdminSeeded(t *testing.T) {
	c := NewController(mainAdmin, 100, nil)

	require.True(t, c.IsAdmin(mainAdmin))
	require.True(t, c.HasAccess(mainAdmin))
	require.Equal(t, models.TierAdmin, c.Tier(mainAdmin))
	require.Nil(t, c.Identity(mainAdmin).SubscriptionExpiry)
	require.Equal(t, []string{mainAdmin}, c.Recipients())
}

func TestFreeTierAdmission(t *testing.T) {
	c := NewController("", 100, nil)

	for i := 0; i < 100; i++ {
		require.True(t, c.TryJoinFreeTier(fmt.Sprintf("u%03d", i)), "join %d", i)
	}
	require.False(t, c.TryJoinFreeTier("u100"))
	require.ErrorIs(t, c.JoinFreeTier("u101"), ErrCapacityExceeded)

	for i := 0; i < 100; i++ {
		require.True(t, c.HasAccess(fmt.Sprintf("u%03d", i)))
	}
	require.False(t, c.HasAccess("u100"))
	require.Equal(t, 100, c.Stats().Free)
	require.Equal(t, 0, c.Stats().FreeRemaining())
}

func TestFreeTierRejectsExistingMembers(t *testing.T) {
	c := NewController("", 100, nil)

	require.NoError(t, c.JoinFreeTier("a"))
	require.ErrorIs(t, c.JoinFreeTier("a"), ErrAlreadyMember)

	require.NoError(t, c.GrantPaid("b", 30))
	require.ErrorIs(t, c.JoinFreeTier("b"), ErrAlreadyMember)
}

func TestGrantPaidMovesOutOfFree(t *testing.T) {
	clk := newClock()
	c := NewController("", 100, nil).WithClock(clk.Now)

	require.NoError(t, c.JoinFreeTier("alice"))
	require.NoError(t, c.GrantPaid("alice", 7))

	free, paid := c.Members()
	require.NotContains(t, free, "alice")
	require.Contains(t, paid, "alice")
	require.Equal(t, models.TierPaid, c.Tier("alice"))

	st := c.Stats()
	require.Equal(t, 0, st.Free)
	require.Equal(t, 1, st.Paid)
	require.Equal(t, 1, st.Total)

	id := c.Identity("alice")
	require.NotNil(t, id.SubscriptionExpiry)
	require.True(t, clk.Now().Add(7*24*time.Hour).Equal(*id.SubscriptionExpiry))

	// до истечения sweep ничего не снимает
	clk.Advance(7 * 24 * time.Hour)
	require.Empty(t, c.SweepExpired())
	require.True(t, c.HasAccess("alice"))

	clk.Advance(time.Second)
	require.Equal(t, []string{"alice"}, c.SweepExpired())
	require.False(t, c.HasAccess("alice"))
	require.Equal(t, models.TierNone, c.Tier("alice"))
	require.Nil(t, c.Identity("alice").SubscriptionExpiry)
}

func TestSweepKeepsAdminAccess(t *testing.T) {
	clk := newClock()
	c := NewController(mainAdmin, 100, nil).WithClock(clk.Now)

	require.NoError(t, c.AddAdmin(mainAdmin, "bob"))
	require.NoError(t, c.GrantPaid("bob", 1))
	clk.Advance(48 * time.Hour)

	require.Equal(t, []string{"bob"}, c.SweepExpired())
	require.True(t, c.HasAccess("bob"), "admin keeps access after paid expiry")
	require.True(t, c.HasAccess(mainAdmin))
}

func TestGrantPaidValidation(t *testing.T) {
	c := NewController("", 100, nil)
	require.ErrorIs(t, c.GrantPaid("x", 0), ErrInvalidDays)
	require.ErrorIs(t, c.GrantPaid(" ", 5), ErrNotFound)
}

func TestMainAdminProtection(t *testing.T) {
	c := NewController(mainAdmin, 100, nil)
	require.NoError(t, c.AddAdmin(mainAdmin, "helper"))

	before := c.Admins()
	require.ErrorIs(t, c.RemoveAdmin(mainAdmin, mainAdmin), ErrPermissionDenied)
	require.ErrorIs(t, c.RemoveAdmin("helper", mainAdmin), ErrPermissionDenied)
	require.Equal(t, before, c.Admins())

	require.ErrorIs(t, c.RemovePaid(mainAdmin), ErrPermissionDenied)
	require.True(t, c.HasAccess(mainAdmin))
}

func TestAdminManagementOnlyByMainAdmin(t *testing.T) {
	c := NewController(mainAdmin, 100, nil)

	require.ErrorIs(t, c.AddAdmin("someone", "other"), ErrPermissionDenied)
	require.NoError(t, c.AddAdmin(mainAdmin, "helper"))
	require.ErrorIs(t, c.AddAdmin(mainAdmin, "helper"), ErrAlreadyMember)
	require.True(t, c.IsAdmin("helper"))

	require.ErrorIs(t, c.RemoveAdmin("helper", "helper"), ErrPermissionDenied)
	require.NoError(t, c.RemoveAdmin(mainAdmin, "helper"))
	require.False(t, c.IsAdmin("helper"))
	require.ErrorIs(t, c.RemoveAdmin(mainAdmin, "helper"), ErrNotFound)
}

func TestBroadcastCutover(t *testing.T) {
	tests := []struct {
		name string
		free int
		paid int
		want int
	}{
		{name: "empty", free: 0, paid: 0, want: 0},
		{name: "exactly at capacity", free: 99, paid: 1, want: 100},
		{name: "all free at capacity", free: 100, paid: 0, want: 100},
		{name: "one over: 100 free + 1 paid", free: 100, paid: 1, want: 1},
		{name: "paid only over capacity", free: 0, paid: 101, want: 101},
		{name: "mix over capacity", free: 60, paid: 41, want: 41},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController("", 100, nil)
			for i := 0; i < tt.free; i++ {
				require.NoError(t, c.JoinFreeTier(fmt.Sprintf("f%d", i)))
			}
			for i := 0; i < tt.paid; i++ {
				require.NoError(t, c.GrantPaid(fmt.Sprintf("p%d", i), 30))
			}
			require.Len(t, c.Recipients(), tt.want)
		})
	}
}

func TestBroadcastCutoverPaidOnlyCanBeEmpty(t *testing.T) {
	clk := newClock()
	c := NewController("", 100, nil).WithClock(clk.Now)
	for i := 0; i < 100; i++ {
		require.NoError(t, c.JoinFreeTier(fmt.Sprintf("f%d", i)))
	}
	require.NoError(t, c.GrantPaid("p", 1))
	require.Equal(t, []string{"p"}, c.Recipients())

	// платный удалён без sweep: 100 free + пустой paid -> под порогом снова
	require.NoError(t, c.RemovePaid("p"))
	require.Len(t, c.Recipients(), 100)
	require.ErrorIs(t, c.JoinFreeTier("late"), ErrCapacityExceeded)
}

func TestBroadcastCutoverEmptyRecipients(t *testing.T) {
	// capacity меньше числа уже выданных free-мест (после смены конфига)
	st := stateservice.NewMemory()
	big := NewController("", 100, st)
	for i := 0; i < 100; i++ {
		require.NoError(t, big.JoinFreeTier(fmt.Sprintf("f%d", i)))
	}

	small := NewController("", 50, st)
	require.NoError(t, small.Restore(context.Background()))
	require.Equal(t, 100, small.Stats().Free, "free grants are never revoked")
	require.Empty(t, small.Recipients(), "over the threshold only paid users receive, and there are none")
}

func TestPendingPaymentsAndVerify(t *testing.T) {
	clk := newClock()
	c := NewController(mainAdmin, 100, nil).WithClock(clk.Now)

	require.NoError(t, c.JoinFreeTier("carol"))
	p := c.SubmitPayment("carol", "usdt", "TRX123")
	require.NotEmpty(t, p.ID)
	require.Equal(t, "USDT", p.Method)
	require.Equal(t, "pending", p.Status)

	clk.Advance(time.Minute)
	c.SubmitPayment("dave", "btc", "abc")

	pending := c.Pending()
	require.Len(t, pending, 2)
	require.Equal(t, "carol", pending[0].UserID)

	require.NoError(t, c.Verify("carol", 30))
	require.Len(t, c.Pending(), 1)
	require.Equal(t, models.TierPaid, c.Tier("carol"))
	require.Equal(t, 0, c.Stats().Free)

	require.ErrorIs(t, c.Verify("dave", 0), ErrInvalidDays)
	require.Len(t, c.Pending(), 1, "failed verify keeps the request")
}

func TestLanguage(t *testing.T) {
	c := NewController("", 100, nil)
	_, ok := c.Language("u")
	require.False(t, ok)

	c.SetLanguage("u", "de")
	lang, ok := c.Language("u")
	require.True(t, ok)
	require.Equal(t, "de", lang)
	require.Equal(t, "de", c.Identity("u").Language)
}

func TestRestoreFromStore(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	st := stateservice.NewMemory()

	c := NewController(mainAdmin, 100, st).WithClock(clk.Now)
	require.NoError(t, c.JoinFreeTier("f1"))
	require.NoError(t, c.GrantPaid("p1", 30))
	require.NoError(t, c.AddAdmin(mainAdmin, "a1"))
	c.SetLanguage("f1", "ru")
	c.SubmitPayment("f1", "eth", "0x1")

	r := NewController(mainAdmin, 100, st).WithClock(clk.Now)
	require.NoError(t, r.Restore(ctx))

	assert.Equal(t, models.TierFree, r.Tier("f1"))
	assert.Equal(t, models.TierPaid, r.Tier("p1"))
	assert.True(t, r.IsAdmin("a1"))
	assert.True(t, r.IsAdmin(mainAdmin))
	lang, _ := r.Language("f1")
	assert.Equal(t, "ru", lang)
	assert.Len(t, r.Pending(), 1)

	exp := r.Identity("p1").SubscriptionExpiry
	require.NotNil(t, exp)
	assert.True(t, clk.Now().Add(30*24*time.Hour).Equal(*exp))

	// повторный join после рестарта не проходит
	assert.ErrorIs(t, r.JoinFreeTier("f1"), ErrAlreadyMember)
}

func TestConcurrentJoinsRespectCapacity(t *testing.T) {
	c := NewController("", 100, nil)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		joined int
	)
	for i := 0; i < 300; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if c.TryJoinFreeTier(fmt.Sprintf("u%d", i)) {
				mu.Lock()
				joined++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 100, joined)
	require.Equal(t, 100, c.Stats().Free)
}
