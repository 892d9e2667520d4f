package repository

import (
	"context"
	"testing"

	"matchbook/domain/entities"
	"matchbook/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBetRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	punter := testutil.CreateTestUser("punter")
	require.NoError(t, userRepo.Create(ctx, punter))

	bet := testutil.CreateTestBet(punter.ID, 5)
	require.NoError(t, repo.Create(ctx, bet))
	assert.NotZero(t, bet.ID)
	assert.False(t, bet.Resolved)

	got, err := repo.GetByID(ctx, bet.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, punter.ID, got.UserID)
	assert.Equal(t, int64(5), got.Amount)
	assert.Equal(t, int64(entities.DefaultOdds), got.Odds)

	missing, err := repo.GetByID(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBetRepository_ListByMatch_UnresolvedFilter(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	punter := testutil.CreateTestUser("punter")
	require.NoError(t, userRepo.Create(ctx, punter))

	open := testutil.CreateTestBet(punter.ID, 5)
	require.NoError(t, repo.Create(ctx, open))
	settled := testutil.CreateTestBet(punter.ID, 3)
	require.NoError(t, repo.Create(ctx, settled))
	require.NoError(t, repo.Resolve(ctx, settled.ID, true))

	all, err := repo.ListByMatch(ctx, entities.CurrentMatchID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unresolved, err := repo.ListByMatch(ctx, entities.CurrentMatchID, true)
	require.NoError(t, err)
	require.Len(t, unresolved, 1)
	assert.Equal(t, open.ID, unresolved[0].ID)
}

func TestBetRepository_Resolve_IsImmutable(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	punter := testutil.CreateTestUser("punter")
	require.NoError(t, userRepo.Create(ctx, punter))

	bet := testutil.CreateTestBet(punter.ID, 5)
	require.NoError(t, repo.Create(ctx, bet))

	require.NoError(t, repo.Resolve(ctx, bet.ID, true))

	got, err := repo.GetByID(ctx, bet.ID)
	require.NoError(t, err)
	assert.True(t, got.Resolved)
	assert.True(t, got.Won)
	assert.Equal(t, int64(20), got.Payout())

	// A second resolution must not flip the recorded outcome
	assert.Error(t, repo.Resolve(ctx, bet.ID, false))

	got, err = repo.GetByID(ctx, bet.ID)
	require.NoError(t, err)
	assert.True(t, got.Won)
}

func TestBetRepository_ListByUser(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	mine := testutil.CreateTestUser("mine")
	require.NoError(t, userRepo.Create(ctx, mine))
	theirs := testutil.CreateTestUser("theirs")
	require.NoError(t, userRepo.Create(ctx, theirs))

	require.NoError(t, repo.Create(ctx, testutil.CreateTestBet(mine.ID, 2)))
	require.NoError(t, repo.Create(ctx, testutil.CreateTestBet(mine.ID, 3)))
	require.NoError(t, repo.Create(ctx, testutil.CreateTestBet(theirs.ID, 4)))

	bets, err := repo.ListByUser(ctx, mine.ID, entities.CurrentMatchID)
	require.NoError(t, err)
	require.Len(t, bets, 2)
	for _, b := range bets {
		assert.Equal(t, mine.ID, b.UserID)
	}
}
