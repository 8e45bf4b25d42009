package order

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-labs/storefront/internal/domain/cart"
	"github.com/storefront-labs/storefront/internal/domain/item"
	"github.com/storefront-labs/storefront/internal/domain/user"
)

// --- Mock implementations ---

type mockUserRepo struct {
	byUsername map[string]*user.User
}

func (m *mockUserRepo) FindByID(_ context.Context, _ string) (*user.User, error) {
	return nil, user.ErrNotFound
}

func (m *mockUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := m.byUsername[username]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) CreateWithCart(_ context.Context, _ *user.User, _ string) error {
	return nil
}

type mockCartRepo struct {
	byUserID map[string]*cart.Cart
}

func (m *mockCartRepo) GetByUserID(_ context.Context, userID string) (*cart.Cart, error) {
	c, ok := m.byUserID[userID]
	if !ok {
		return nil, errors.New("cart not found")
	}
	return c, nil
}

func (m *mockCartRepo) Save(_ context.Context, _ *cart.Cart) error { return nil }

type mockOrderRepo struct {
	created []Order
	err     error
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *o)
	return nil
}

func (m *mockOrderRepo) ListByUserID(_ context.Context, userID string) ([]Order, error) {
	var out []Order
	for _, o := range m.created {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// --- Helpers ---

func earplugs() item.Item {
	return item.Item{
		ID:    "i1",
		Name:  "Earplugs",
		Price: decimal.RequireFromString("120"),
	}
}

func newFixture(c *cart.Cart) (*Service, *mockOrderRepo) {
	users := &mockUserRepo{byUsername: map[string]*user.User{
		"nik": {ID: "u1", Username: "nik"},
	}}
	carts := &mockCartRepo{byUserID: map[string]*cart.Cart{"u1": c}}
	orders := &mockOrderRepo{}
	return NewService(users, carts, orders), orders
}

func cartWith(items ...item.Item) *cart.Cart {
	c := &cart.Cart{ID: "c1", UserID: "u1", Items: items}
	c.Total = c.SumItems()
	return c
}

// --- Tests ---

func TestSubmit_SnapshotsCart(t *testing.T) {
	it := earplugs()
	c := cartWith(it, it, it)
	svc, orders := newFixture(c)

	o, err := svc.Submit(context.Background(), "nik")
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "u1", o.UserID)
	assert.Len(t, o.Items, 3)
	assert.True(t, decimal.RequireFromString("360").Equal(o.Total))
	assert.False(t, o.CreatedAt.IsZero())
	require.Len(t, orders.created, 1)
}

func TestSubmit_LeavesCartUnchanged(t *testing.T) {
	it := earplugs()
	c := cartWith(it, it, it)
	svc, _ := newFixture(c)

	_, err := svc.Submit(context.Background(), "nik")
	require.NoError(t, err)

	assert.Len(t, c.Items, 3)
	assert.True(t, decimal.RequireFromString("360").Equal(c.Total))
}

func TestSubmit_OrderDoesNotAliasCart(t *testing.T) {
	it := earplugs()
	c := cartWith(it, it, it)
	svc, _ := newFixture(c)

	o, err := svc.Submit(context.Background(), "nik")
	require.NoError(t, err)

	// Later cart mutations must not bleed into the snapshot.
	c.Items[0] = item.Item{ID: "other", Name: "Other", Price: decimal.NewFromInt(1)}
	c.Items = c.Items[:1]
	c.Total = c.SumItems()

	assert.Len(t, o.Items, 3)
	assert.Equal(t, "i1", o.Items[0].ID)
	assert.True(t, decimal.RequireFromString("360").Equal(o.Total))
}

func TestSubmit_EmptyCart(t *testing.T) {
	svc, orders := newFixture(cartWith())

	o, err := svc.Submit(context.Background(), "nik")
	require.NoError(t, err)

	assert.Empty(t, o.Items)
	assert.True(t, o.Total.IsZero())
	require.Len(t, orders.created, 1)
}

func TestSubmit_UserNotFound(t *testing.T) {
	svc, orders := newFixture(cartWith(earplugs()))

	_, err := svc.Submit(context.Background(), "ghost")
	require.ErrorIs(t, err, user.ErrNotFound)

	// No order was created.
	assert.Empty(t, orders.created)
}

func TestSubmit_CreateError(t *testing.T) {
	svc, orders := newFixture(cartWith(earplugs()))
	orders.err = errors.New("db write failed")

	_, err := svc.Submit(context.Background(), "nik")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")
}

func TestHistory(t *testing.T) {
	it := earplugs()
	svc, _ := newFixture(cartWith(it, it))

	first, err := svc.Submit(context.Background(), "nik")
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), "nik")
	require.NoError(t, err)

	history, err := svc.History(context.Background(), "nik")
	require.NoError(t, err)

	require.Len(t, history, 2)
	ids := []string{history[0].ID, history[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestHistory_UserNotFound(t *testing.T) {
	svc, _ := newFixture(cartWith())

	_, err := svc.History(context.Background(), "ghost")
	require.ErrorIs(t, err, user.ErrNotFound)
}

func TestSubmit_CreatedAtIsUTC(t *testing.T) {
	svc, _ := newFixture(cartWith())
	svc.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	}

	o, err := svc.Submit(context.Background(), "nik")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, o.CreatedAt.Location())
}
