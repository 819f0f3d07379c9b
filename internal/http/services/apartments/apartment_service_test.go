package apartments

import (
	"context"
	"testing"
	"time"

	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/cache"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	dto "github.com/dropDatabas3/alquiler/internal/http/dto/apartments"
	"github.com/dropDatabas3/alquiler/internal/store/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDuringList ejecuta during una sola vez, después de leer el store y
// antes de que el service cachee la página.
type writeDuringList struct {
	repository.ApartmentRepository
	during func()
}

func (w *writeDuringList) List(ctx context.Context, f repository.ApartmentFilter, p repository.Page) ([]repository.Apartment, error) {
	list, err := w.ApartmentRepository.List(ctx, f, p)
	if w.during != nil {
		fn := w.during
		w.during = nil
		fn()
	}
	return list, err
}

func TestList_WriteDuringReadIsNotCachedAsCurrent(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()
	repo := &writeDuringList{ApartmentRepository: conn.Apartments()}
	svc := NewApartmentService(Deps{
		Apartments: repo,
		Listing:    cache.NewListing(cache.NewMemory("test:", time.Minute), "apartments:public", time.Minute),
	})
	admin := &authz.Principal{SubjectID: "65a0000000000000000000ad", IsAdmin: true, IsActive: true}

	repo.during = func() {
		_, err := svc.Create(ctx, admin, dto.CreateApartmentRequest{Number: "z9", Level: "1"})
		require.NoError(t, err)
	}

	page := repository.DefaultPage()
	first, err := svc.List(ctx, nil, page)
	require.NoError(t, err)
	assert.Empty(t, first.Apartments)

	second, err := svc.List(ctx, nil, page)
	require.NoError(t, err)
	require.Len(t, second.Apartments, 1)
	assert.Equal(t, "z9", second.Apartments[0].Number)
}
