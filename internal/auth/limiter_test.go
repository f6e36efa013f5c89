// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tributestream/internal/auth"
	"github.com/taibuivan/tributestream/internal/platform/apperr"
)

// fakeCounter is an in-memory stand-in for the three Redis commands the
// limiter issues.
type fakeCounter struct {
	mu      sync.Mutex
	counts  map[string]int64
	ttls    map[string]time.Duration
	failure error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (counter *fakeCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	if counter.failure != nil {
		cmd := redis.NewIntCmd(ctx)
		cmd.SetErr(counter.failure)
		return cmd
	}
	counter.counts[key]++
	return redis.NewIntResult(counter.counts[key], nil)
}

func (counter *fakeCounter) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	counter.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (counter *fakeCounter) TTL(_ context.Context, key string) *redis.DurationCmd {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	return redis.NewDurationResult(counter.ttls[key], nil)
}

/*
TestRedisAttemptLimiter counts within a fixed window and reports the remaining TTL.
*/
func TestRedisAttemptLimiter(t *testing.T) {
	counter := newFakeCounter()
	limiter := auth.NewRedisAttemptLimiter(counter, 3, 15*time.Minute)
	ctx := context.Background()

	for range 3 {
		wait, err := limiter.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.Zero(t, wait)
	}

	wait, err := limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, wait)

	wait, err = limiter.Allow(ctx, "client-b")
	require.NoError(t, err)
	assert.Zero(t, wait, "keys are independent")
}

/*
TestRedisAttemptLimiter_BackendFailure surfaces the error so callers can fail open.
*/
func TestRedisAttemptLimiter_BackendFailure(t *testing.T) {
	counter := newFakeCounter()
	counter.failure = errors.New("connection refused")
	limiter := auth.NewRedisAttemptLimiter(counter, 3, time.Minute)

	_, err := limiter.Allow(context.Background(), "client-a")
	assert.Error(t, err)
}

/*
TestMemoryAttemptLimiter allows the burst, then asks the caller to wait.
*/
func TestMemoryAttemptLimiter(t *testing.T) {
	limiter := auth.NewMemoryAttemptLimiter(2, time.Minute)
	ctx := context.Background()

	for range 2 {
		wait, err := limiter.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.Zero(t, wait)
	}

	wait, err := limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.Greater(t, wait, time.Duration(0))

	limiter.Prune()
	wait, err = limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.Greater(t, wait, time.Duration(0), "an exhausted bucket survives pruning")
}

// brokenLimiter always fails.
type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (time.Duration, error) {
	return 0, errors.New("redis down")
}

// stubGateway answers every call with a fixed session.
type stubGateway struct {
	calls int
}

func (gateway *stubGateway) Login(context.Context, string, string) (*auth.Session, error) {
	gateway.calls++
	return &auth.Session{Token: "t", User: auth.User{ID: 1}}, nil
}

func (gateway *stubGateway) Register(context.Context, auth.RegisterInput) (*auth.Session, error) {
	gateway.calls++
	return &auth.Session{Token: "t"}, nil
}

func (gateway *stubGateway) Me(context.Context, string) (*auth.User, error) {
	gateway.calls++
	return &auth.User{ID: 1}, nil
}

func (gateway *stubGateway) ForgotPassword(context.Context, string) error {
	gateway.calls++
	return nil
}

func (gateway *stubGateway) ResetPassword(context.Context, auth.ResetPasswordInput) (*auth.Session, error) {
	gateway.calls++
	return &auth.Session{Token: "t"}, nil
}

/*
TestService_ThrottleFailsOpen keeps logins working when the limiter backend is down.
*/
func TestService_ThrottleFailsOpen(t *testing.T) {
	gateway := &stubGateway{}
	service := auth.NewService(gateway, brokenLimiter{})

	session, err := service.Login(context.Background(), auth.LoginInput{Identifier: "jane", Password: "x", ClientIP: "10.0.0.1"})

	require.NoError(t, err)
	assert.Equal(t, "t", session.Token)
	assert.Equal(t, 1, gateway.calls)
}

/*
TestService_ThrottleRetryAfter rounds the wait up to whole seconds.
*/
func TestService_ThrottleRetryAfter(t *testing.T) {
	gateway := &stubGateway{}
	limiter := auth.NewRedisAttemptLimiter(newFakeCounter(), 1, 90*time.Second)
	service := auth.NewService(gateway, limiter)
	ctx := context.Background()

	_, err := service.Login(ctx, auth.LoginInput{ClientIP: "10.0.0.1"})
	require.NoError(t, err)

	_, err = service.Login(ctx, auth.LoginInput{ClientIP: "10.0.0.1"})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeRateLimited, appErr.Code)
	assert.Equal(t, "Too many requests. Try again in 90s.", appErr.Message)
	assert.Equal(t, 1, gateway.calls)
}

/*
TestService_ThrottleKeyedByIdentifier counts each account separately from the
same address, ignoring case.
*/
func TestService_ThrottleKeyedByIdentifier(t *testing.T) {
	gateway := &stubGateway{}
	service := auth.NewService(gateway, auth.NewMemoryAttemptLimiter(1, time.Minute))
	ctx := context.Background()

	_, err := service.Login(ctx, auth.LoginInput{Identifier: "jane", ClientIP: "10.0.0.1"})
	require.NoError(t, err)

	_, err = service.Login(ctx, auth.LoginInput{Identifier: "john", ClientIP: "10.0.0.1"})
	require.NoError(t, err)

	_, err = service.Login(ctx, auth.LoginInput{Identifier: " JANE ", ClientIP: "10.0.0.1"})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeRateLimited, appErr.Code)

	_, err = service.Login(ctx, auth.LoginInput{Identifier: "jane", ClientIP: "10.0.0.2"})
	require.NoError(t, err)
	assert.Equal(t, 3, gateway.calls)
}

/*
TestService_CurrentUser_NoToken never reaches the gateway.
*/
func TestService_CurrentUser_NoToken(t *testing.T) {
	gateway := &stubGateway{}
	service := auth.NewService(gateway, nil)

	_, err := service.CurrentUser(context.Background(), "")

	assert.True(t, apperr.IsUnauthorized(err))
	assert.Zero(t, gateway.calls)
}

/*
TestSessionTTL maps the rememberMe flag to a lifetime.
*/
func TestSessionTTL(t *testing.T) {
	yes, no := true, false

	assert.Equal(t, time.Hour, auth.SessionTTL(nil, time.Hour, 2*time.Hour, time.Minute))
	assert.Equal(t, 2*time.Hour, auth.SessionTTL(&yes, time.Hour, 2*time.Hour, time.Minute))
	assert.Equal(t, time.Minute, auth.SessionTTL(&no, time.Hour, 2*time.Hour, time.Minute))
}
