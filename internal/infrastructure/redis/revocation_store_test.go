package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	keys   map[string]time.Duration
	failOn error
}

func (f *fakeClient) SetNX(ctx context.Context, key string, _ interface{}, exp time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	if f.failOn != nil {
		cmd.SetErr(f.failOn)
		return cmd
	}
	if _, ok := f.keys[key]; ok {
		cmd.SetVal(false)
		return cmd
	}
	f.keys[key] = exp
	cmd.SetVal(true)
	return cmd
}

func (f *fakeClient) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.failOn != nil {
		cmd.SetErr(f.failOn)
		return cmd
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func TestRevocationStore_RevokeUsaTTLRestante(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	fc := &fakeClient{keys: map[string]time.Duration{}}
	s := NewRevocationStore(fc)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	claimed, err := s.Revoke(ctx, "jti-1", now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Equal(t, time.Hour, fc.keys[keyPrefix+"jti-1"])

	claimed, err = s.Revoke(ctx, "jti-1", now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, claimed, "la segunda revocación del mismo jti no gana")

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = s.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationStore_TokenVencidoNoSeGuarda(t *testing.T) {
	now := time.Now()
	fc := &fakeClient{keys: map[string]time.Duration{}}
	s := NewRevocationStore(fc)
	s.now = func() time.Time { return now }

	claimed, err := s.Revoke(context.Background(), "old", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Empty(t, fc.keys)
}

func TestRevocationStore_PropagaErrores(t *testing.T) {
	fc := &fakeClient{keys: map[string]time.Duration{}, failOn: errors.New("conn refused")}
	s := NewRevocationStore(fc)

	_, err := s.Revoke(context.Background(), "x", time.Now().Add(time.Hour))
	assert.Error(t, err)
	_, err = s.IsRevoked(context.Background(), "x")
	assert.Error(t, err)
}
