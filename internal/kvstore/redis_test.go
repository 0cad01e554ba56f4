package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	s := NewRedisStore(rdb)

	t.Run("get hit", func(t *testing.T) {
		mock.ExpectGet("attendance:timer:u1").SetVal(`{"a":1}`)
		v, err := s.Get(ctx, "timer:u1")
		assert.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(v))
	})

	t.Run("get miss maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectGet("attendance:timer:u2").RedisNil()
		_, err := s.Get(ctx, "timer:u2")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("get error is returned", func(t *testing.T) {
		mock.ExpectGet("attendance:timer:u3").SetErr(errors.New("conn reset"))
		_, err := s.Get(ctx, "timer:u3")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("set with ttl", func(t *testing.T) {
		mock.ExpectSet("attendance:session:s1", []byte("tok"), time.Hour).SetVal("OK")
		assert.NoError(t, s.Set(ctx, "session:s1", []byte("tok"), time.Hour))
	})

	t.Run("delete", func(t *testing.T) {
		mock.ExpectDel("attendance:session:s1").SetVal(1)
		assert.NoError(t, s.Delete(ctx, "session:s1"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
