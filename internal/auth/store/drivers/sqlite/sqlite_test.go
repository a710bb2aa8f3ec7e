package sqlite

import (
	"context"
	"testing"

	"github.com/coffeelux/auth/internal/auth/domain"
	"github.com/coffeelux/auth/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func createUser(t *testing.T, st *Store, email string, role domain.Role) int64 {
	t.Helper()
	id, err := st.Users().CreateUser(context.Background(), domain.User{
		FullName:     "Pham Van D",
		Email:        email,
		PasswordHash: "c2FsdA==:0000000000000000000000000000000000000000000000000000000000000000",
		RoleID:       role.ID(),
		Active:       true,
	})
	require.NoError(t, err)
	return id
}

func TestUsers_CreateAndFetch(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	id := createUser(t, st, "d@coffeelux.vn", domain.RoleBarista)
	require.Positive(t, id)

	u, err := st.Users().GetUserByEmail(ctx, "d@coffeelux.vn")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.Equal(t, domain.RoleBarista, u.Role())
	require.True(t, u.Active)
	require.False(t, u.CreatedAt.IsZero())
}

func TestUsers_EmailFoldedOnWrite(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	createUser(t, st, "  Mixed.Case@CoffeeLux.VN ", domain.RoleHR)

	u, err := st.Users().GetUserByEmail(ctx, "mixed.case@coffeelux.vn")
	require.NoError(t, err)
	require.Equal(t, "mixed.case@coffeelux.vn", u.Email)

	// Lookups fold too.
	_, err = st.Users().GetUserByEmail(ctx, "MIXED.CASE@coffeelux.vn")
	require.NoError(t, err)
}

func TestUsers_DuplicateEmailRejected(t *testing.T) {
	st := newTestStore(t)

	createUser(t, st, "dup@coffeelux.vn", domain.RoleHR)

	_, err := st.Users().CreateUser(context.Background(), domain.User{
		FullName:     "Other",
		Email:        "DUP@coffeelux.vn",
		PasswordHash: "x:y",
		RoleID:       domain.RoleBarista.ID(),
		Active:       true,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsers_NotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Users().GetUserByEmail(context.Background(), "nobody@coffeelux.vn")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_ActiveFlagGatesLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	id := createUser(t, st, "e@coffeelux.vn", domain.RoleInventory)

	ok, err := st.Users().ExistsAndActive(ctx, "e@coffeelux.vn")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, st.Users().SetActive(ctx, id, false))

	ok, err = st.Users().ExistsAndActive(ctx, "e@coffeelux.vn")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = st.Users().GetActiveUserByEmail(ctx, "e@coffeelux.vn")
	require.ErrorIs(t, err, store.ErrNotFound)

	// The row itself is still there; accounts are deactivated, not deleted.
	u, err := st.Users().GetUserByEmail(ctx, "e@coffeelux.vn")
	require.NoError(t, err)
	require.False(t, u.Active)
}

func TestUsers_UpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	id := createUser(t, st, "f@coffeelux.vn", domain.RoleAdmin)

	require.NoError(t, st.Users().UpdatePasswordHash(ctx, id, "new-salt:new-digest"))

	u, err := st.Users().GetUserByEmail(ctx, "f@coffeelux.vn")
	require.NoError(t, err)
	require.Equal(t, "new-salt:new-digest", u.PasswordHash)

	require.ErrorIs(t, st.Users().UpdatePasswordHash(ctx, 99999, "x:y"), store.ErrNotFound)
}

func TestSettings_SeededRoles(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	for id, want := range map[int64]string{
		1: "HR", 2: "Admin", 3: "Inventory", 4: "Barista",
	} {
		name, err := st.Settings().RoleName(ctx, id)
		require.NoError(t, err)
		require.Equal(t, want, name)
	}

	_, err := st.Settings().RoleName(ctx, 99)
	require.ErrorIs(t, err, store.ErrNotFound)

	roles, err := st.Settings().ListByType(ctx, "Role")
	require.NoError(t, err)
	require.Len(t, roles, 4)
	require.Equal(t, "HR", roles[0].Value)
}

func TestStore_Ping(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Ping(context.Background()))
}
