// Package dispenser drives the pellet dispenser hardware.
package dispenser

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync/atomic"
	"time"
)

// Dispenser releases one pellet per call.
type Dispenser interface {
	Dispense(ctx context.Context) error
}

// Command dispenses by running an external program, typically a vendor
// script that pulses the feeder once.
type Command struct {
	Path string
	Args []string
}

// NewCommand returns a Command dispenser for path and args.
func NewCommand(path string, args ...string) *Command {
	return &Command{Path: path, Args: args}
}

// Dispense runs the command and waits for it to exit.
func (c *Command) Dispense(ctx context.Context) error {
	if c.Path == "" {
		return errors.New("dispenser command not configured")
	}
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("run dispenser %s: %w (output: %s)", c.Path, err, out)
	}
	return nil
}

// Noop counts dispense calls without touching hardware.
type Noop struct {
	count atomic.Int64
}

// Dispense records one pellet.
func (n *Noop) Dispense(context.Context) error {
	n.count.Add(1)
	return nil
}

// Count returns how many pellets have been "dispensed".
func (n *Noop) Count() int {
	return int(n.count.Load())
}

// DispenseN releases n pellets, waiting wait between consecutive pellets.
// It returns the number dispensed before any error or cancellation.
func DispenseN(ctx context.Context, d Dispenser, n int, wait time.Duration) (int, error) {
	for i := 0; i < n; i++ {
		if i > 0 && wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return i, ctx.Err()
			case <-t.C:
			}
		}
		if err := d.Dispense(ctx); err != nil {
			return i, fmt.Errorf("pellet %d of %d: %w", i+1, n, err)
		}
	}
	return n, nil
}

// Duration returns how long DispenseN spends waiting between n pellets.
func Duration(n int, wait time.Duration) time.Duration {
	if n <= 1 {
		return 0
	}
	return time.Duration(n-1) * wait
}
