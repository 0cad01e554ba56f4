package worklocation

import (
	"context"
	"errors"
	"testing"

	"go-attendance/internal/kvstore"
	worklocationerrors "go-attendance/internal/worklocation/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	locations []WorkLocation
	listErr   error
	lists     int
	createErr error
}

func (f *fakeBackend) ListWorkLocations(ctx context.Context) ([]WorkLocation, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]WorkLocation(nil), f.locations...), nil
}

func (f *fakeBackend) CreateWorkLocation(ctx context.Context, loc WorkLocation) (WorkLocation, error) {
	if f.createErr != nil {
		return WorkLocation{}, f.createErr
	}
	loc.ID = "loc-new"
	f.locations = append(f.locations, loc)
	return loc, nil
}

func (f *fakeBackend) UpdateWorkLocation(ctx context.Context, id string, loc WorkLocation) (WorkLocation, error) {
	for i := range f.locations {
		if f.locations[i].ID == id {
			f.locations[i] = loc
			return loc, nil
		}
	}
	return WorkLocation{}, errors.New("Work location not found")
}

func (f *fakeBackend) DeleteWorkLocation(ctx context.Context, id string) error {
	out := f.locations[:0]
	for _, l := range f.locations {
		if l.ID != id {
			out = append(out, l)
		}
	}
	f.locations = out
	return nil
}

func ptr(v float64) *float64 { return &v }

func newTestService(b *fakeBackend) Service {
	return NewService(b, NewLocationsProvider(context.Background(), kvstore.NewMemoryStore(), b, 0, nil))
}

func TestService_List(t *testing.T) {
	t.Run("fresh from backend", func(t *testing.T) {
		b := &fakeBackend{locations: []WorkLocation{{ID: "loc-1", Name: "Kandy", Latitude: 7.29, Longitude: 80.63, Radius: 150}}}
		svc := newTestService(b)

		res := svc.List(context.Background(), false)
		assert.Equal(t, "fresh", res.Source)
		require.Len(t, res.Locations, 1)
		assert.Equal(t, "Kandy", res.Locations[0].Name)
		assert.NotNil(t, res.FetchedAt)

		assert.Equal(t, "cache", svc.List(context.Background(), false).Source)
		assert.Equal(t, "fresh", svc.List(context.Background(), true).Source)
		assert.Equal(t, 2, b.lists)
	})

	t.Run("backend down serves default office", func(t *testing.T) {
		svc := newTestService(&fakeBackend{listErr: errors.New("dial tcp: refused")})

		res := svc.List(context.Background(), false)
		assert.Equal(t, "fallback", res.Source)
		assert.True(t, res.Stale)
		assert.NotEmpty(t, res.Warning)
		assert.Equal(t, DefaultLocations(), res.Locations)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		svc := newTestService(&fakeBackend{})

		res := svc.List(context.Background(), false)
		assert.NotNil(t, res.Locations)
		assert.Empty(t, res.Locations)
	})
}

func TestService_Create(t *testing.T) {
	t.Run("refreshes cache", func(t *testing.T) {
		b := &fakeBackend{}
		svc := newTestService(b)
		_ = svc.List(context.Background(), false)

		loc, err := svc.Create(context.Background(), LocationRequest{
			Name: " Galle Branch ", Latitude: ptr(6.03), Longitude: ptr(80.21), Radius: 75,
		})
		require.NoError(t, err)
		assert.Equal(t, "loc-new", loc.ID)
		assert.Equal(t, "Galle Branch", loc.Name)

		locs := svc.Locations(context.Background())
		require.Len(t, locs, 1)
		assert.Equal(t, "Galle Branch", locs[0].Name)
	})

	t.Run("invalid radius", func(t *testing.T) {
		svc := newTestService(&fakeBackend{})

		_, err := svc.Create(context.Background(), LocationRequest{Name: "X", Latitude: ptr(1), Longitude: ptr(1), Radius: -1})
		assert.ErrorIs(t, err, worklocationerrors.ErrInvalidRadius)
	})

	t.Run("backend error", func(t *testing.T) {
		backendErr := errors.New("Location name already exists")
		svc := newTestService(&fakeBackend{createErr: backendErr})

		_, err := svc.Create(context.Background(), LocationRequest{Name: "X", Latitude: ptr(1), Longitude: ptr(1), Radius: 10})
		assert.ErrorIs(t, err, backendErr)
	})
}

func TestService_UpdateDelete(t *testing.T) {
	b := &fakeBackend{locations: []WorkLocation{{ID: "loc-1", Name: "HQ", Latitude: 6.9, Longitude: 79.8, Radius: 100}}}
	svc := newTestService(b)

	updated, err := svc.Update(context.Background(), "loc-1", LocationRequest{Name: "HQ", Latitude: ptr(6.9), Longitude: ptr(79.8), Radius: 250})
	require.NoError(t, err)
	assert.Equal(t, 250.0, updated.Radius)
	assert.Equal(t, 250.0, svc.Locations(context.Background())[0].Radius)

	_, err = svc.Update(context.Background(), " ", LocationRequest{Name: "HQ", Latitude: ptr(6.9), Longitude: ptr(79.8), Radius: 1})
	assert.ErrorIs(t, err, worklocationerrors.ErrInvalidLocationID)

	require.NoError(t, svc.Delete(context.Background(), "loc-1"))
	assert.Empty(t, svc.Locations(context.Background()))

	assert.ErrorIs(t, svc.Delete(context.Background(), ""), worklocationerrors.ErrInvalidLocationID)
}
