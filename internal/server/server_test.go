package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/facultyhub/internal/config"
)

func TestServeStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Server.ShutdownTimeout = "1s"

	stopped := false
	srv := newServer(cfg, gin.New(), zerolog.Nop(), func() { stopped = true })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.serve(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, stopped)
}

func TestServeReportsListenFailure(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Port = "not-a-port"

	stopped := false
	srv := newServer(cfg, gin.New(), zerolog.Nop(), func() { stopped = true })
	err := srv.serve(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, http.ErrServerClosed)
	assert.True(t, stopped)
}
