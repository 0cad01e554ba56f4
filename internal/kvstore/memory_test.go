package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type sessionState struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func TestMemoryStore_TypedRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	key := NewKey[sessionState]("session:abc")

	_, err := Load(ctx, s, key)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, Save(ctx, s, key, sessionState{Token: "t1", Role: "ADMIN"}, 0))
	got, err := Load(ctx, s, key)
	assert.NoError(t, err)
	assert.Equal(t, "t1", got.Token)

	assert.NoError(t, Clear(ctx, s, key))
	_, err = Load(ctx, s, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	assert.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))

	now = now.Add(59 * time.Second)
	v, err := s.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	now = now.Add(time.Second)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	in := []byte("abc")
	assert.NoError(t, s.Set(ctx, "k", in, 0))
	in[0] = 'x'

	out, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(out))
	out[1] = 'y'

	again, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestLoad_DecodeError(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	assert.NoError(t, s.Set(ctx, "session:bad", []byte("{not json"), 0))

	_, err := Load(ctx, s, NewKey[sessionState]("session:bad"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ExpiredReadKeepsConcurrentSet(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	now := start
	s.now = func() time.Time { return now }
	assert.NoError(t, s.Set(ctx, "k", []byte("stale"), time.Minute))

	// The first clock read after expiry happens between the read and the
	// delete; a writer slips a fresh value in at that point.
	now = start.Add(2 * time.Minute)
	replaced := false
	s.now = func() time.Time {
		if !replaced {
			replaced = true
			assert.NoError(t, s.Set(ctx, "k", []byte("fresh"), 0))
		}
		return now
	}

	v, err := s.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "fresh", string(v))

	v, err = s.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "fresh", string(v))
}
