package repository

import (
	"context"
	"testing"

	"matchbook/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByUsername(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("user found", func(t *testing.T) {
		testUser := testutil.CreateTestUser("alice")
		require.NoError(t, repo.Create(ctx, testUser))

		user, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, testUser.ID, user.ID)
		assert.Equal(t, testUser.Username, user.Username)
		assert.Equal(t, testUser.TotalCoins, user.TotalCoins)
		assert.False(t, user.CreatedAt.IsZero())
	})
}

func TestUserRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation fills timestamps", func(t *testing.T) {
		testUser := testutil.CreateTestUser("bob")

		require.NoError(t, repo.Create(ctx, testUser))
		assert.False(t, testUser.CreatedAt.IsZero())
		assert.False(t, testUser.UpdatedAt.IsZero())
	})

	t.Run("duplicate username", func(t *testing.T) {
		first := testutil.CreateTestUser("carol")
		require.NoError(t, repo.Create(ctx, first))

		dup := testutil.CreateTestUser("carol")
		assert.Error(t, repo.Create(ctx, dup))
	})
}

func TestUserRepository_List_OrderedByTotalCoins(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.CreateTestUserWithCoins("middling", 50, 0)))
	require.NoError(t, repo.Create(ctx, testutil.CreateTestUserWithCoins("whale", 500, 0)))
	require.NoError(t, repo.Create(ctx, testutil.CreateTestUserWithCoins("broke", 0, 0)))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, "whale", users[0].Username)
	assert.Equal(t, "middling", users[1].Username)
	assert.Equal(t, "broke", users[2].Username)
}

func TestUserRepository_UpdateCoins(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful update", func(t *testing.T) {
		testUser := testutil.CreateTestUser("dave")
		require.NoError(t, repo.Create(ctx, testUser))

		require.NoError(t, repo.UpdateCoins(ctx, testUser.ID, 90, 10))

		user, err := repo.GetByID(ctx, testUser.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(90), user.TotalCoins)
		assert.Equal(t, int64(10), user.AvailableCoins)
	})

	t.Run("user not found", func(t *testing.T) {
		err := repo.UpdateCoins(ctx, "00000000-0000-0000-0000-000000000000", 1, 1)
		assert.Error(t, err)
	})
}

func TestUserRepository_ZeroAvailableCoins_SkipsAdmins(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	player := testutil.CreateTestUserWithCoins("player", 50, 10)
	require.NoError(t, repo.Create(ctx, player))

	admin := testutil.CreateTestAdmin("overlord")
	admin.AvailableCoins = 7
	require.NoError(t, repo.Create(ctx, admin))

	affected, err := repo.ZeroAvailableCoins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.GetByID(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.AvailableCoins)

	gotAdmin, err := repo.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), gotAdmin.AvailableCoins)
}

func TestUserRepository_VotedFlags(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	voter := testutil.CreateTestUser("voter")
	require.NoError(t, repo.Create(ctx, voter))
	bystander := testutil.CreateTestUser("bystander")
	require.NoError(t, repo.Create(ctx, bystander))

	require.NoError(t, repo.SetVoted(ctx, voter.ID, true))

	got, err := repo.GetByID(ctx, voter.ID)
	require.NoError(t, err)
	assert.True(t, got.Voted)

	require.NoError(t, repo.ResetVoted(ctx))

	got, err = repo.GetByID(ctx, voter.ID)
	require.NoError(t, err)
	assert.False(t, got.Voted)
}

func TestUserRepository_AddMVPPoints(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	testUser := testutil.CreateTestUser("seer")
	require.NoError(t, repo.Create(ctx, testUser))

	require.NoError(t, repo.AddMVPPoints(ctx, testUser.ID, 1))
	require.NoError(t, repo.AddMVPPoints(ctx, testUser.ID, 1))

	user, err := repo.GetByID(ctx, testUser.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.MVPPoints)
}
