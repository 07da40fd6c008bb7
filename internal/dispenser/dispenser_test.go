package dispenser

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingDispenser struct {
	failAt int
	calls  int
}

func (f *failingDispenser) Dispense(context.Context) error {
	f.calls++
	if f.calls == f.failAt {
		return errors.New("jammed")
	}
	return nil
}

func TestDispenseN(t *testing.T) {
	var d Noop
	n, err := DispenseN(context.Background(), &d, 3, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, d.Count())
}

func TestDispenseNZero(t *testing.T) {
	var d Noop
	n, err := DispenseN(context.Background(), &d, 0, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, d.Count())
}

func TestDispenseNStopsOnError(t *testing.T) {
	d := &failingDispenser{failAt: 2}
	n, err := DispenseN(context.Background(), d, 4, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pellet 2 of 4")
	assert.Equal(t, 1, n)
}

func TestDispenseNCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var d Noop
	n, err := DispenseN(ctx, &d, 3, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, n)
}

func TestDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), Duration(0, time.Second))
	assert.Equal(t, time.Duration(0), Duration(1, time.Second))
	assert.Equal(t, 1500*time.Millisecond, Duration(4, 500*time.Millisecond))
}

func TestCommandUnconfigured(t *testing.T) {
	err := (&Command{}).Dispense(context.Background())
	assert.Error(t, err)
}

func TestCommandRuns(t *testing.T) {
	path, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}
	require.NoError(t, NewCommand(path).Dispense(context.Background()))
}

func TestCommandFailure(t *testing.T) {
	path, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}
	assert.Error(t, NewCommand(path).Dispense(context.Background()))
}
