package signalhandler

import (
	"context"
	"syscall"
	"testing"
	"time"

	"dupfinder/logging"

	"github.com/stretchr/testify/assert"
)

func TestSetupHandlerCancelsOnSignal(t *testing.T) {
	ctx, stop := SetupHandler(context.Background(), logging.Discard())
	defer stop()

	assert.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled")
	}
}

func TestStopCancels(t *testing.T) {
	ctx, stop := SetupHandler(context.Background(), logging.Discard())
	stop()
	assert.Error(t, ctx.Err())
}

func TestGetOptimalProcs(t *testing.T) {
	assert.GreaterOrEqual(t, GetOptimalProcs(), 1)
}
