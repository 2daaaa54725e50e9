package repository

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/accountowner/internal/metrics"
	"github.com/deppfellow/accountowner/internal/model/account"
	"github.com/deppfellow/accountowner/internal/model/owner"
	"github.com/deppfellow/accountowner/internal/sqlerr"
	"github.com/deppfellow/accountowner/internal/testing/testdb"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepositories(t *testing.T) *Repositories {
	t.Helper()
	return &Repositories{
		db:      testdb.New(t),
		metrics: metrics.New(prometheus.NewRegistry()),
	}
}

func newOwner(name string) *owner.Owner {
	return &owner.Owner{
		Name:        name,
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Address:     "1 Main St",
	}
}

func newAccount(ownerID uuid.UUID, accountType string) *account.Account {
	return &account.Account{
		AccountType: accountType,
		DateCreated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		OwnerID:     ownerID,
	}
}

func seed(t *testing.T, repos *Repositories, entities ...any) {
	t.Helper()

	w := repos.Wrapper()
	for _, e := range entities {
		switch v := e.(type) {
		case *owner.Owner:
			w.Owner().Create(v)
		case *account.Account:
			w.Account().Create(v)
		}
	}
	_, err := w.Save(context.Background())
	require.NoError(t, err)
}

func TestWrapper_LazyRepositoriesAreCached(t *testing.T) {
	w := newRepositories(t).Wrapper()

	assert.Same(t, w.Owner(), w.Owner())
	assert.Same(t, w.Account(), w.Account())
}

func TestWrapper_WritesAreStagedUntilSave(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	w := repos.Wrapper()

	o := newOwner("Ann")
	w.Owner().Create(o)
	w.Account().Create(newAccount(uuid.New(), "Checking"))

	all, err := w.Owner().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 2, w.gateway.Pending())

	rows, err := w.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)
	assert.Equal(t, 0, w.gateway.Pending())
	assert.NotEqual(t, uuid.Nil, o.ID)

	found, err := repos.Wrapper().Owner().GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Ann", found.Name)
	assert.Equal(t, "1990-01-01", found.DateOfBirth.UTC().Format("2006-01-02"))
}

func TestWrapper_SaveWithNothingStaged(t *testing.T) {
	rows, err := newRepositories(t).Wrapper().Save(context.Background())

	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestReadsAreUntracked(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	o := newOwner("Ann")
	seed(t, repos, o)

	w := repos.Wrapper()
	found, err := w.Owner().GetByID(ctx, o.ID)
	require.NoError(t, err)
	found.Name = "Changed"

	_, err = w.Save(ctx)
	require.NoError(t, err)

	again, err := repos.Wrapper().Owner().GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again.Name)
}

func TestOwnerRepository_GetByID_Absent(t *testing.T) {
	found, err := newRepositories(t).Wrapper().Owner().GetByID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestOwnerRepository_GetWithDetails(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	ann, bob := newOwner("Ann"), newOwner("Bob")
	seed(t, repos, ann, bob)
	seed(t, repos,
		newAccount(ann.ID, "Checking"),
		newAccount(ann.ID, "Savings"),
		newAccount(bob.ID, "Checking"),
	)

	w := repos.Wrapper()

	plain, err := w.Owner().GetByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Empty(t, plain.Accounts)

	detailed, err := w.Owner().GetWithDetails(ctx, ann.ID)
	require.NoError(t, err)
	require.NotNil(t, detailed)
	assert.Len(t, detailed.Accounts, 2)
	for _, a := range detailed.Accounts {
		assert.Equal(t, ann.ID, a.OwnerID)
	}
}

func TestAccountRepository_GetByOwner(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	ownerID := uuid.New()
	seed(t, repos,
		newAccount(ownerID, "Checking"),
		newAccount(ownerID, "Savings"),
		newAccount(uuid.New(), "Checking"),
	)

	accounts, err := repos.Wrapper().Account().GetByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.ElementsMatch(t, []string{"Checking", "Savings"}, []string{accounts[0].AccountType, accounts[1].AccountType})

	none, err := repos.Wrapper().Account().GetByOwner(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateWritesAllColumnsButNotAssociations(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	o := newOwner("Ann")
	seed(t, repos, o)

	w := repos.Wrapper()
	found, err := w.Owner().GetByID(ctx, o.ID)
	require.NoError(t, err)

	found.Name = "Ann Lee"
	found.Address = ""
	found.Accounts = []account.Account{*newAccount(o.ID, "Checking")}
	w.Owner().Update(found)

	rows, err := w.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	detailed, err := repos.Wrapper().Owner().GetWithDetails(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", detailed.Name)
	assert.Equal(t, "", detailed.Address)
	assert.Empty(t, detailed.Accounts)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	a := newAccount(uuid.New(), "Checking")
	seed(t, repos, a)

	w := repos.Wrapper()
	w.Account().Delete(a)
	rows, err := w.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	found, err := repos.Wrapper().Account().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFailedCommitRollsBackEveryStagedChange(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	existing := newAccount(uuid.New(), "Checking")
	seed(t, repos, existing)

	w := repos.Wrapper()
	o := newOwner("Ann")
	w.Owner().Create(o)

	duplicate := newAccount(o.ID, "Savings")
	duplicate.ID = existing.ID
	w.Account().Create(duplicate)

	_, err := w.Save(ctx)
	require.Error(t, err)

	var storageErr *sqlerr.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "commit", storageErr.Op)
	assert.Equal(t, 0, w.gateway.Pending())

	owners, err := repos.Wrapper().Owner().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, owners)
}

func TestFindOneLeavesCallerScopesIntact(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	seed(t, repos, newOwner("Ann"), newOwner("Bob"))

	scopes := make([]Scope, 1, 2)
	scopes[0] = Where("name = ?", "Ann")
	both := append(scopes, Where("name = ?", "Bob"))

	owners := repos.Wrapper().Owner()
	ann, err := owners.FindOne(ctx, scopes...)
	require.NoError(t, err)
	require.NotNil(t, ann)
	assert.Equal(t, "Ann", ann.Name)

	none, err := owners.FindBy(ctx, both...)
	require.NoError(t, err)
	assert.Empty(t, none)
}
