package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dropDatabas3/alquiler/internal/audit"
	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/cache"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	aptdto "github.com/dropDatabas3/alquiler/internal/http/dto/apartments"
	authdto "github.com/dropDatabas3/alquiler/internal/http/dto/auth"
	ctrdto "github.com/dropDatabas3/alquiler/internal/http/dto/contracts"
	mdto "github.com/dropDatabas3/alquiler/internal/http/dto/maintenance"
	paydto "github.com/dropDatabas3/alquiler/internal/http/dto/payments"
	userdto "github.com/dropDatabas3/alquiler/internal/http/dto/users"
	"github.com/dropDatabas3/alquiler/internal/http/services"
	"github.com/dropDatabas3/alquiler/internal/idp"
	"github.com/dropDatabas3/alquiler/internal/integrity"
	jwtx "github.com/dropDatabas3/alquiler/internal/jwt"
	"github.com/dropDatabas3/alquiler/internal/security/password"
	"github.com/dropDatabas3/alquiler/internal/store/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type env struct {
	svc   *services.Services
	conn  *memory.Connection
	admin *authz.Principal
	ctx   context.Context
}

func newEnv(t *testing.T) env {
	t.Helper()
	password.Cost = bcrypt.MinCost
	conn := memory.New()
	iss, err := jwtx.NewIssuer("alquiler-test", []byte("0123456789abcdef"), time.Hour)
	require.NoError(t, err)
	svc := services.New(services.Deps{
		Store:    conn,
		Issuer:   iss,
		Provider: idp.NewLocal(conn.Users()),
		Audit:    audit.NewTrail(nil),
		Cache:    cache.NewMemory("test:", time.Minute),
		CacheTTL: time.Minute,
	})
	return env{
		svc:   svc,
		conn:  conn,
		admin: &authz.Principal{SubjectID: "65a0000000000000000000ad", IsAdmin: true, IsActive: true},
		ctx:   context.Background(),
	}
}

func (e env) user(t *testing.T, email string) *authz.Principal {
	t.Helper()
	u, err := e.svc.Users.Create(e.ctx, e.admin, userdto.CreateUserRequest{
		FullName: "Ana Pérez",
		Email:    email,
		Password: "Secret123!",
	})
	require.NoError(t, err)
	return &authz.Principal{SubjectID: u.ID, Email: u.Email, IsActive: true}
}

func (e env) apartment(t *testing.T, number string) *aptdto.ApartmentResponse {
	t.Helper()
	a, err := e.svc.Apartments.Create(e.ctx, e.admin, aptdto.CreateApartmentRequest{Number: number, Level: "1"})
	require.NoError(t, err)
	return a
}

func (e env) contract(t *testing.T, owner, apartmentID string) *ctrdto.ContractResponse {
	t.Helper()
	c, err := e.svc.Contracts.Create(e.ctx, e.admin, ctrdto.CreateContractRequest{
		OwnerUserID: owner,
		ApartmentID: apartmentID,
		StartDate:   "2025-01-01",
		EndDate:     "2025-12-31",
	})
	require.NoError(t, err)
	return c
}

func TestApartments_UniqueNumberAfterNormalization(t *testing.T) {
	e := newEnv(t)
	e.apartment(t, "A1")

	_, err := e.svc.Apartments.Create(e.ctx, e.admin, aptdto.CreateApartmentRequest{Number: " a1 ", Level: "2"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestApartments_NonAdminCannotCreate(t *testing.T) {
	e := newEnv(t)
	p := e.user(t, "ana@example.com")
	_, err := e.svc.Apartments.Create(e.ctx, p, aptdto.CreateApartmentRequest{Number: "b2", Level: "1"})
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestApartments_ListingCacheInvalidatedOnWrite(t *testing.T) {
	e := newEnv(t)
	e.apartment(t, "a1")

	page := repository.DefaultPage()
	first, err := e.svc.Apartments.List(e.ctx, nil, page)
	require.NoError(t, err)
	require.Len(t, first.Apartments, 1)

	e.apartment(t, "a2")
	second, err := e.svc.Apartments.List(e.ctx, nil, page)
	require.NoError(t, err)
	assert.Len(t, second.Apartments, 2)
}

func TestApartments_ArbitratedDelete(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner@example.com")
	busy := e.apartment(t, "a1")
	free := e.apartment(t, "a2")
	e.contract(t, owner.SubjectID, busy.ID)

	d, err := e.svc.Apartments.Delete(e.ctx, e.admin, busy.ID)
	require.NoError(t, err)
	assert.Equal(t, integrity.ActionDeactivated, d.Action)
	assert.EqualValues(t, 1, d.DependentCount)

	d, err = e.svc.Apartments.Delete(e.ctx, e.admin, free.ID)
	require.NoError(t, err)
	assert.Equal(t, integrity.ActionDeleted, d.Action)

	_, err = e.svc.Apartments.Get(e.ctx, free.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestContracts_OwnershipFiltering(t *testing.T) {
	e := newEnv(t)
	ana := e.user(t, "ana@example.com")
	bob := e.user(t, "bob@example.com")
	apt := e.apartment(t, "a1")
	mine := e.contract(t, ana.SubjectID, apt.ID)
	theirs := e.contract(t, bob.SubjectID, apt.ID)

	list, err := e.svc.Contracts.List(e.ctx, ana, nil, repository.DefaultPage())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	_, err = e.svc.Contracts.Get(e.ctx, ana, theirs.ID)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	_, err = e.svc.Contracts.Get(e.ctx, ana, "65a0000000000000000000ff")
	assert.ErrorIs(t, err, repository.ErrForbidden)

	_, err = e.svc.Contracts.Get(e.ctx, e.admin, "65a0000000000000000000ff")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	all, err := e.svc.Contracts.List(e.ctx, e.admin, nil, repository.DefaultPage())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestContracts_CreateValidatesReferencesAndDates(t *testing.T) {
	e := newEnv(t)
	ana := e.user(t, "ana@example.com")
	apt := e.apartment(t, "a1")

	_, err := e.svc.Contracts.Create(e.ctx, e.admin, ctrdto.CreateContractRequest{
		OwnerUserID: ana.SubjectID, ApartmentID: "65a0000000000000000000ff",
		StartDate: "2025-01-01", EndDate: "2025-02-01",
	})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = e.svc.Contracts.Create(e.ctx, e.admin, ctrdto.CreateContractRequest{
		OwnerUserID: ana.SubjectID, ApartmentID: apt.ID,
		StartDate: "2025-03-01", EndDate: "2025-02-01",
	})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	c := e.contract(t, ana.SubjectID, apt.ID)
	assert.Equal(t, "2025-01-01", c.StartDate)
	assert.True(t, c.Active)
}

func TestPayments_ScopeAndContractBinding(t *testing.T) {
	e := newEnv(t)
	ana := e.user(t, "ana@example.com")
	bob := e.user(t, "bob@example.com")
	apt := e.apartment(t, "a1")
	c1 := e.contract(t, ana.SubjectID, apt.ID)
	c2 := e.contract(t, bob.SubjectID, apt.ID)

	p1, err := e.svc.Payments.Create(e.ctx, e.admin, c1.ID, paydto.CreatePaymentRequest{Cost: 100, PaymentMethodID: "cash"})
	require.NoError(t, err)
	assert.True(t, p1.IsPaid)
	unpaid := false
	p2, err := e.svc.Payments.Create(e.ctx, e.admin, c2.ID, paydto.CreatePaymentRequest{Cost: 50, PaymentMethodID: "card", IsPaid: &unpaid})
	require.NoError(t, err)

	mine, err := e.svc.Payments.List(e.ctx, ana, nil, repository.DefaultPage())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, p1.ID, mine[0].ID)

	_, err = e.svc.Payments.Get(e.ctx, ana, p2.ID)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	_, err = e.svc.Payments.GetForContract(e.ctx, e.admin, c1.ID, p2.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	public, err := e.svc.Payments.PublicList(e.ctx, &unpaid, repository.DefaultPage())
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, p2.ID, public[0].ID)

	_, err = e.svc.Payments.Create(e.ctx, e.admin, c1.ID, paydto.CreatePaymentRequest{Cost: 0, PaymentMethodID: "cash"})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestMaintenance_DefaultsAndDeactivate(t *testing.T) {
	e := newEnv(t)
	ana := e.user(t, "ana@example.com")
	apt := e.apartment(t, "a1")
	other := e.apartment(t, "a2")
	c := e.contract(t, ana.SubjectID, apt.ID)

	typ, err := e.svc.MaintenanceType.Create(e.ctx, e.admin, mdto.CreateTypeRequest{Description: "Plomería", BaseCost: 80})
	require.NoError(t, err)
	_, err = e.svc.MaintenanceType.Create(e.ctx, e.admin, mdto.CreateTypeRequest{Description: "plomería", BaseCost: 10})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = e.svc.Maintenance.Create(e.ctx, e.admin, mdto.CreateMaintenanceRequest{
		ApartmentID: other.ID, ContractID: c.ID, MaintenanceTypeID: typ.ID,
	})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	m, err := e.svc.Maintenance.Create(e.ctx, e.admin, mdto.CreateMaintenanceRequest{
		ApartmentID: apt.ID, ContractID: c.ID, MaintenanceTypeID: typ.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 80.0, m.Cost)
	assert.Equal(t, "pending", m.Status)

	got, err := e.svc.Maintenance.Get(e.ctx, ana, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)

	d, err := e.svc.Maintenance.Deactivate(e.ctx, e.admin, m.ID)
	require.NoError(t, err)
	assert.False(t, d.Active)
	assert.Equal(t, "cancelled", d.Status)

	_, err = e.svc.MaintenanceType.Deactivate(e.ctx, e.admin, typ.ID)
	require.NoError(t, err)
	_, err = e.svc.MaintenanceType.Get(e.ctx, ana, typ.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAuth_LoginAndInactiveAccount(t *testing.T) {
	e := newEnv(t)
	ana := e.user(t, "ana@example.com")

	res, err := e.svc.Auth.Login(e.ctx, authdto.LoginRequest{Email: "ANA@example.com", Password: "Secret123!"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.NotEmpty(t, res.AccessToken)

	_, err = e.svc.Auth.Login(e.ctx, authdto.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, idp.ErrInvalidCredentials)

	_, err = e.svc.Users.Deactivate(e.ctx, e.admin, ana.SubjectID)
	require.NoError(t, err)
	_, err = e.svc.Auth.Login(e.ctx, authdto.LoginRequest{Email: "ana@example.com", Password: "Secret123!"})
	assert.ErrorIs(t, err, authz.ErrInactiveAccount)
}

func TestUsers_ProfileUpdateAndDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	ana := e.user(t, "ana@example.com")
	e.user(t, "bob@example.com")

	_, err := e.svc.Users.Create(e.ctx, e.admin, userdto.CreateUserRequest{
		FullName: "Otra Ana", Email: "ANA@example.com", Password: "Secret123!",
	})
	assert.ErrorIs(t, err, repository.ErrConflict)

	taken := "bob@example.com"
	_, err = e.svc.Users.UpdateProfile(e.ctx, ana, userdto.UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, repository.ErrConflict)

	weak := "short"
	_, err = e.svc.Users.UpdateProfile(e.ctx, ana, userdto.UpdateProfileRequest{Password: &weak})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	name := "Ana María"
	u, err := e.svc.Users.UpdateProfile(e.ctx, ana, userdto.UpdateProfileRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", u.FullName)
	assert.False(t, u.IsAdmin)
}

func TestReports_StatsAndThreshold(t *testing.T) {
	e := newEnv(t)
	ana := e.user(t, "ana@example.com")
	apt := e.apartment(t, "a1")
	c := e.contract(t, ana.SubjectID, apt.ID)
	for _, cost := range []float64{100, 200, 300} {
		_, err := e.svc.Payments.Create(e.ctx, e.admin, c.ID, paydto.CreatePaymentRequest{Cost: cost, PaymentMethodID: "cash"})
		require.NoError(t, err)
	}

	st, err := e.svc.Reports.ContractPaymentStats(e.ctx, ana, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, st.TotalPayments)
	assert.Equal(t, 600.0, st.TotalAmount)
	assert.Equal(t, 200.0, st.AvgAmount)

	var buf bytes.Buffer
	require.NoError(t, e.svc.Reports.ExportPaymentStats(e.ctx, e.admin, repository.DefaultPage(), &buf))
	assert.NotZero(t, buf.Len())
	assert.ErrorIs(t, e.svc.Reports.ExportPaymentStats(e.ctx, ana, repository.DefaultPage(), &buf), repository.ErrForbidden)

	th, err := e.svc.Reports.CheckMaintenance(e.ctx, ana, apt.ID)
	require.NoError(t, err)
	assert.False(t, th.Alert)
	require.NotNil(t, th.PendingCount)
	assert.EqualValues(t, 0, *th.PendingCount)
}

func TestHealth_NoChecksIsReady(t *testing.T) {
	e := newEnv(t)
	h := e.svc.Health.Check(e.ctx)
	assert.Equal(t, "ready", h.Status)
}
