package tele

import (
	"context"

	"github.com/hmikit/multipage/log2"
	tele_config "github.com/hmikit/multipage/tele/config"
)

type CommandCallback func(ctx context.Context, payload []byte) bool

// Transporter moves opaque payloads. Send methods report success so
// the queue worker can decide between delete and requeue.
type Transporter interface {
	Init(ctx context.Context, log *log2.Log, cfg tele_config.Config, onCommand CommandCallback) error
	SendState(payload []byte) bool
	SendEvent(payload []byte) bool
	CloseTele()
}
