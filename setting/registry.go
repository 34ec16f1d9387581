package setting

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hmikit/multipage/helpers"
	"github.com/juju/errors"
)

// Registry is an ordered collection of named cells. It marshals to
// one name=value line per cell, so stored state stays readable in a
// shell and survives schema growth: unknown stored names are skipped,
// missing ones keep their default.
type Registry struct {
	cells []Cell
}

func NewRegistry(cells ...Cell) *Registry {
	self := &Registry{cells: make([]Cell, 0, len(cells)+8)}
	self.Add(cells...)
	return self
}

// Add registers cells. Duplicate names are code errors.
func (self *Registry) Add(cells ...Cell) *Registry {
	for _, c := range cells {
		if c == nil || c.Name() == "" {
			panic("code error setting registry nil cell")
		}
		if _, ok := self.Get(c.Name()); ok {
			panic(fmt.Sprintf("code error setting registry duplicate name=%s", c.Name()))
		}
		self.cells = append(self.cells, c)
	}
	return self
}

func (self *Registry) Get(name string) (Cell, bool) {
	for _, c := range self.cells {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

func (self *Registry) Len() int { return len(self.cells) }

func (self *Registry) Each(f func(c Cell)) {
	for _, c := range self.cells {
		f(c)
	}
}

func (self *Registry) MarshalBinary() ([]byte, error) {
	buf := bytes.Buffer{}
	for _, c := range self.cells {
		fmt.Fprintf(&buf, "%s=%s\n", c.Name(), c.String())
	}
	return buf.Bytes(), nil
}

func (self *Registry) UnmarshalBinary(b []byte) error {
	errs := make([]error, 0)
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			errs = append(errs, errors.NotValidf("setting line %q", line))
			continue
		}
		cell, ok := self.Get(parts[0])
		if !ok {
			// stored by an older or newer build, not an error
			continue
		}
		if err := cell.Set(parts[1]); err != nil {
			errs = append(errs, errors.Trace(err))
		}
	}
	return helpers.FoldErrors(errs)
}
