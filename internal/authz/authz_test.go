package authz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	jwtx "github.com/dropDatabas3/alquiler/internal/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContracts struct {
	byID map[string]*repository.Contract
	err  error
}

func (f *fakeContracts) GetByID(_ context.Context, id string) (*repository.Contract, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeContracts) IDsByOwner(_ context.Context, owner string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	for id, c := range f.byID {
		if c.OwnerUserID == owner {
			out = append(out, id)
		}
	}
	return out, nil
}

func newFixture() (*Guard, *fakeContracts) {
	fc := &fakeContracts{byID: map[string]*repository.Contract{
		"c1": {ID: "c1", OwnerUserID: "alice"},
		"c2": {ID: "c2", OwnerUserID: "bob"},
	}}
	return NewGuard(fc), fc
}

var (
	admin = &Principal{SubjectID: "root", IsAdmin: true, IsActive: true}
	alice = &Principal{SubjectID: "alice", IsActive: true}
)

func TestRoleGuards(t *testing.T) {
	assert.ErrorIs(t, RequireActive(nil), jwtx.ErrTokenMissing)
	assert.ErrorIs(t, RequireActive(&Principal{SubjectID: "x"}), ErrInactiveAccount)
	assert.NoError(t, RequireActive(alice))

	assert.ErrorIs(t, RequireAdmin(alice), repository.ErrForbidden)
	assert.ErrorIs(t, RequireAdmin(&Principal{SubjectID: "x", IsAdmin: true}), ErrInactiveAccount)
	assert.NoError(t, RequireAdmin(admin))
}

func TestGuard_Contract(t *testing.T) {
	g, fc := newFixture()
	assert.Equal(t, Allow, g.CanAccessContract(alice, fc.byID["c1"]))
	assert.Equal(t, Deny, g.CanAccessContract(alice, fc.byID["c2"]))
	assert.Equal(t, Allow, g.CanAccessContract(admin, fc.byID["c2"]))
	assert.Equal(t, Deny, g.CanAccessContract(nil, fc.byID["c1"]))
	assert.Equal(t, Deny, g.CanAccessContract(&Principal{IsActive: true}, &repository.Contract{}))
}

func TestGuard_Transitive(t *testing.T) {
	g, _ := newFixture()
	ctx := context.Background()

	d, err := g.CanAccessMaintenance(ctx, alice, &repository.Maintenance{ContractID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, Allow, d)

	d, err = g.CanAccessMaintenance(ctx, alice, &repository.Maintenance{ContractID: "c2"})
	require.NoError(t, err)
	assert.Equal(t, Deny, d)
	assert.ErrorIs(t, d.Err(), repository.ErrForbidden)

	// referencia colgante
	d, err = g.CanAccessPayment(ctx, alice, &repository.Payment{ContractID: "missing"})
	require.NoError(t, err)
	assert.Equal(t, Deny, d)

	d, err = g.CanAccessPayment(ctx, admin, &repository.Payment{ContractID: "missing"})
	require.NoError(t, err)
	assert.Equal(t, Allow, d)
}

func TestGuard_LookupFailure(t *testing.T) {
	g, fc := newFixture()
	fc.err = repository.Unavailable("find", errors.New("boom"))

	d, err := g.CanAccessPayment(context.Background(), alice, &repository.Payment{ContractID: "c1"})
	assert.Equal(t, Deny, d)
	assert.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestGuard_Scope(t *testing.T) {
	g, _ := newFixture()
	ctx := context.Background()

	s, err := g.Scope(ctx, admin)
	require.NoError(t, err)
	assert.True(t, s.All)

	s, err = g.Scope(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, s.ContractIDs)
	assert.True(t, s.Contains("c1"))
	assert.False(t, s.Contains("c2"))

	s, err = g.Scope(ctx, &Principal{SubjectID: "nobody", IsActive: true})
	require.NoError(t, err)
	assert.True(t, s.Empty())

	f := g.ContractFilter(alice, repository.ContractFilter{OwnerUserID: "bob"})
	assert.Equal(t, "alice", f.OwnerUserID)
	f = g.ContractFilter(admin, repository.ContractFilter{OwnerUserID: "bob"})
	assert.Equal(t, "bob", f.OwnerUserID)
}

func TestResolver(t *testing.T) {
	iss, err := jwtx.NewIssuer("alquiler", []byte("secret"), time.Hour)
	require.NoError(t, err)
	tok, exp, err := iss.IssueAccess(jwtx.Subject{ID: "alice", Email: "a@example.com", Active: true})
	require.NoError(t, err)

	r := NewResolver(iss)
	p, err := r.Resolve("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.SubjectID)
	assert.False(t, p.IsAdmin)
	assert.WithinDuration(t, exp, p.ExpiresAt, time.Second)

	_, err = r.Resolve("")
	assert.ErrorIs(t, err, jwtx.ErrTokenMissing)
	_, err = r.Resolve("Bearer garbage")
	assert.ErrorIs(t, err, jwtx.ErrTokenInvalid)
}
