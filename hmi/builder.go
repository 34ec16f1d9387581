package hmi

import (
	"fmt"
	"strings"

	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/log2"
	"github.com/juju/errors"
)

const (
	DefaultFrameHeight = 2
	DefaultFrameWidth  = 16
)

// Builder assembles a Manager. Add, Startup and Shutdown may be
// called in any order; the graph is validated once, in Build. A
// builder is consumed by a successful Build.
type Builder struct {
	log      *log2.Log
	reg      *Registry
	startup  PageID
	shutdown PageID
	frameH   uint8
	frameW   uint8
	built    bool
}

// NewBuilder starts a builder with a fixed page capacity. log may be
// nil.
func NewBuilder(log *log2.Log, capacity int) *Builder {
	return &Builder{
		log:    log,
		reg:    NewRegistry(capacity),
		frameH: DefaultFrameHeight,
		frameW: DefaultFrameWidth,
	}
}

// Add registers a page. Registry failures (duplicate, capacity) are
// returned here, at the offending call.
func (self *Builder) Add(id PageID, page Page) error {
	if self.built {
		return errors.Errorf("hmi builder already consumed")
	}
	return errors.Trace(self.reg.Register(id, page))
}

// Startup declares the first current page. Without it the first
// registered page starts.
func (self *Builder) Startup(id PageID) *Builder {
	self.startup = id
	return self
}

// Shutdown declares the farewell page shown on the first Exit
// verdict.
func (self *Builder) Shutdown(id PageID) *Builder {
	self.shutdown = id
	return self
}

// FrameSize sets the dimensions of the content buffer the manager
// renders into. Defaults to a 2x16 character display.
func (self *Builder) FrameSize(height, width uint8) *Builder {
	self.frameH = height
	self.frameW = width
	return self
}

// Build validates the whole navigation graph and returns a running
// manager positioned on the startup page. Every missing id is named
// in the error; on error the builder stays usable so the caller can
// register what was missing.
func (self *Builder) Build() (*Manager, error) {
	if self.built {
		return nil, errors.Errorf("hmi builder already consumed")
	}
	if self.reg.Len() == 0 {
		return nil, errors.Annotatef(ErrIncompleteGraph, "no pages registered")
	}

	startup := self.startup
	if startup == "" {
		startup = self.reg.First()
	}

	missing := make([]string, 0, 8)
	if _, err := self.reg.Lookup(startup); err != nil {
		missing = append(missing, fmt.Sprintf("startup page %s not registered", startup))
	}
	if self.shutdown != "" {
		if _, err := self.reg.Lookup(self.shutdown); err != nil {
			missing = append(missing, fmt.Sprintf("shutdown page %s not registered", self.shutdown))
		}
	}
	self.reg.Each(func(id PageID, page Page) {
		linker, ok := page.(Linker)
		if !ok {
			return
		}
		for _, target := range linker.Links() {
			if target == "" {
				continue
			}
			if _, err := self.reg.Lookup(target); err != nil {
				missing = append(missing, fmt.Sprintf("page %s links to missing %s", id, target))
			}
		}
	})
	if len(missing) != 0 {
		return nil, errors.Annotatef(ErrIncompleteGraph, "%s", strings.Join(missing, "; "))
	}

	self.built = true
	m := &Manager{
		log:      self.log,
		reg:      self.reg,
		frame:    display.NewContent(self.frameH, self.frameW),
		current:  startup,
		shutdown: self.shutdown,
		state:    StateRunning,
	}
	start := m.mustLookup(startup)
	if en, ok := start.(Enterer); ok {
		en.Enter()
	}
	m.log.Debugf("hmi built pages=%d startup=%s shutdown=%s", m.reg.Len(), startup, m.shutdown)
	return m, nil
}
