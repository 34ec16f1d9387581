// Package tele ships HMI telemetry off the device: lifecycle state,
// page transitions, errors. The network may be slow or absent,
// reports are queued on disk and delivered in background.
package tele

import (
	"context"

	"github.com/hmikit/multipage/log2"
	tele_config "github.com/hmikit/multipage/tele/config"
)

// State is the device lifecycle on the wire. Zero value doubles as
// the broker will payload, so a dead connection reads as
// disconnected.
type State byte

const (
	StateDisconnected State = 0
	StateBoot         State = 1
	StateRun          State = 2
	StateExit         State = 3
)

// Teler contract:
//   - Init fails only with invalid config, network issues are ignored
//   - report calls block at most for a disk write
//   - State messages may be lost, Page/Error are at-least-once
//   - Close blocks until the queue worker stopped
type Teler interface {
	Init(ctx context.Context, log *log2.Log, cfg tele_config.Config) error
	Close()
	State(s State)
	Error(e error)
	Page(from, to string)
}

type Noop struct{}

var _ Teler = Noop{} // compile-time interface test

func (Noop) Init(context.Context, *log2.Log, tele_config.Config) error { return nil }

func (Noop) Close() {}

func (Noop) State(State) {}

func (Noop) Error(error) {}

func (Noop) Page(from, to string) {}
