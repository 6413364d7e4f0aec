package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/agenda/internal/logger"
)

func testOptions(addr string) ConnectOptions {
	return ConnectOptions{
		Addr:           addr,
		DialTimeout:    100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
		PoolSize:       2,
		ConnectTimeout: 300 * time.Millisecond,
		RetryInterval:  50 * time.Millisecond,
		MaxWait:        100 * time.Millisecond,
		PingTimeout:    100 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestNewConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), testOptions(mr.Addr()), logger.New("error", false))
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewTimesOut(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), testOptions(addr), logger.New("error", false))
	assert.Error(t, err)
}

func TestNewCanceled(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	opts := testOptions(addr)
	opts.ConnectTimeout = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := New(ctx, opts, logger.New("error", false))
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *ConnectOptions)
	}{
		{name: "connect timeout", mutate: func(o *ConnectOptions) { o.ConnectTimeout = 0 }},
		{name: "retry interval", mutate: func(o *ConnectOptions) { o.RetryInterval = 0 }},
		{name: "max wait", mutate: func(o *ConnectOptions) { o.MaxWait = 0 }},
		{name: "ping timeout", mutate: func(o *ConnectOptions) { o.PingTimeout = 0 }},
		{name: "warn threshold", mutate: func(o *ConnectOptions) { o.WarnThreshold = -1 }},
	}

	cl := &connectionLogger{logger: logger.New("error", false)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions("localhost:0")
			tt.mutate(&opts)
			assert.Error(t, cl.validateOptions(opts))
		})
	}
}
