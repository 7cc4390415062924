package loyalty

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type memoryAccounts struct {
	mu       sync.Mutex
	accounts map[string]*models.RewardAccount
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{accounts: map[string]*models.RewardAccount{}}
}

func accountKey(tenantID uint, phone string) string {
	return fmt.Sprintf("%d|%s", tenantID, phone)
}

func (m *memoryAccounts) GetAccount(
	_ context.Context,
	tenantID uint,
	clientPhone string,
) (*models.RewardAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[accountKey(tenantID, clientPhone)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memoryAccounts) MutateAccount(
	_ context.Context,
	tenantID uint,
	clientPhone string,
	clientName string,
	fn func(*models.RewardAccount) error,
) (*models.RewardAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := accountKey(tenantID, clientPhone)
	a, ok := m.accounts[key]
	if !ok {
		a = &models.RewardAccount{
			TenantID:    tenantID,
			ClientPhone: clientPhone,
			ClientName:  clientName,
		}
		m.accounts[key] = a
	}

	if err := fn(a); err != nil {
		return nil, err
	}
	cp := *a
	return &cp, nil
}

var _ domain.Repository = (*memoryAccounts)(nil)

func testEngine() (*Engine, *memoryAccounts) {
	repo := newMemoryAccounts()
	return NewEngine(repo, slog.New(slog.DiscardHandler)), repo
}

// ======================================================
// TESTS
// ======================================================

func TestIncrementAttendance_SeedsAccount(t *testing.T) {
	e, _ := testEngine()

	a, err := e.IncrementAttendance(context.Background(), 1, "+5511987654321", "Ana")
	require.NoError(t, err)

	assert.Equal(t, 1, a.TotalAttendances)
	assert.Equal(t, 0, a.FreeServicesUsed)
	assert.Equal(t, "Ana", a.ClientName)
}

func TestConsumeReward_NoEligibleIsNoop(t *testing.T) {
	e, _ := testEngine()

	for i := 0; i < 9; i++ {
		_, err := e.IncrementAttendance(context.Background(), 1, "+5511987654321", "Ana")
		require.NoError(t, err)
	}

	a, err := e.ConsumeReward(context.Background(), 1, "+5511987654321", "Ana", "America/Sao_Paulo")
	require.NoError(t, err)

	assert.Equal(t, 9, a.TotalAttendances)
	assert.Equal(t, 0, a.FreeServicesUsed)
	assert.Nil(t, a.LastRewardAt)
}

func TestConsumeReward_RedeemsOne(t *testing.T) {
	e, _ := testEngine()

	for i := 0; i < 10; i++ {
		_, err := e.IncrementAttendance(context.Background(), 1, "+5511987654321", "Ana")
		require.NoError(t, err)
	}

	a, err := e.ConsumeReward(context.Background(), 1, "+5511987654321", "Ana", "America/Sao_Paulo")
	require.NoError(t, err)

	assert.Equal(t, 1, a.FreeServicesUsed)
	assert.Equal(t, 0, domain.EligibleRewards(a))
	assert.NotNil(t, a.LastRewardAt)

	// A second redemption finds nothing eligible and changes nothing.
	a, err = e.ConsumeReward(context.Background(), 1, "+5511987654321", "Ana", "America/Sao_Paulo")
	require.NoError(t, err)
	assert.Equal(t, 1, a.FreeServicesUsed)
}

func TestGrantReward_TopsUpToNextMultiple(t *testing.T) {
	e, _ := testEngine()

	for i := 0; i < 7; i++ {
		_, err := e.IncrementAttendance(context.Background(), 1, "+5511987654321", "Ana")
		require.NoError(t, err)
	}

	a, err := e.GrantReward(context.Background(), 1, "+5511987654321", "Ana")
	require.NoError(t, err)

	assert.Equal(t, 10, a.TotalAttendances)
	assert.Equal(t, 1, domain.EligibleRewards(a))
}

func TestGrantReward_AtExactMultipleAdvancesFullCycle(t *testing.T) {
	e, _ := testEngine()

	a, err := e.GrantReward(context.Background(), 1, "+5511987654321", "Ana")
	require.NoError(t, err)
	assert.Equal(t, 10, a.TotalAttendances)

	a, err = e.GrantReward(context.Background(), 1, "+5511987654321", "Ana")
	require.NoError(t, err)
	assert.Equal(t, 20, a.TotalAttendances)
	assert.Equal(t, 2, domain.EligibleRewards(a))
}

func TestAccountsScopedPerTenantAndPhone(t *testing.T) {
	e, _ := testEngine()

	_, err := e.IncrementAttendance(context.Background(), 1, "+5511987654321", "Ana")
	require.NoError(t, err)
	_, err = e.IncrementAttendance(context.Background(), 2, "+5511987654321", "Ana")
	require.NoError(t, err)

	s, err := e.GetSummary(context.Background(), 1, "+5511987654321")
	require.NoError(t, err)
	assert.Equal(t, 1, s.TotalAttendances)
}

func TestGetSummary_UnknownAccount(t *testing.T) {
	e, _ := testEngine()

	_, err := e.GetSummary(context.Background(), 1, "+5511900000000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestIncrementAttendance_ConcurrentCallsAllCount(t *testing.T) {
	e, _ := testEngine()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = e.IncrementAttendance(context.Background(), 1, "+5511987654321", "Ana")
		}()
	}
	wg.Wait()

	s, err := e.GetSummary(context.Background(), 1, "+5511987654321")
	require.NoError(t, err)
	assert.Equal(t, n, s.TotalAttendances)
	assert.Equal(t, 5, s.EligibleRewards)
}
