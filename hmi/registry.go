package hmi

import (
	"github.com/juju/errors"
)

type regEntry struct {
	page Page
	id   PageID
}

// Registry is the bounded id->page table. Capacity is fixed at
// construction, registration order is preserved and observable: the
// first registered page is the default startup page.
//
// Backed by a slice, not a map. Page counts are small on the target
// class of devices and a linear scan keeps iteration order
// deterministic without a second index.
type Registry struct {
	entries []regEntry
}

func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		panic("code error hmi registry capacity must be positive")
	}
	return &Registry{entries: make([]regEntry, 0, capacity)}
}

// Register adds a page under id. Fails without side effects on
// duplicate id, exhausted capacity, empty id or nil page.
func (self *Registry) Register(id PageID, page Page) error {
	if id == "" {
		return errors.NotValidf("empty page id")
	}
	if page == nil {
		return errors.NotValidf("page %s: nil page", id)
	}
	if self.find(id) >= 0 {
		return errors.AlreadyExistsf("page %s", id)
	}
	if len(self.entries) == cap(self.entries) {
		return errors.Annotatef(ErrCapacityExceeded, "page %s capacity=%d", id, cap(self.entries))
	}
	self.entries = append(self.entries, regEntry{id: id, page: page})
	return nil
}

// Lookup resolves id to its page.
func (self *Registry) Lookup(id PageID) (Page, error) {
	if i := self.find(id); i >= 0 {
		return self.entries[i].page, nil
	}
	return nil, errors.NotFoundf("page %s", id)
}

func (self *Registry) find(id PageID) int {
	for i := range self.entries {
		if self.entries[i].id == id {
			return i
		}
	}
	return -1
}

// First returns the id of the earliest registered page.
func (self *Registry) First() PageID {
	if len(self.entries) == 0 {
		return ""
	}
	return self.entries[0].id
}

func (self *Registry) Len() int { return len(self.entries) }
func (self *Registry) Cap() int { return cap(self.entries) }

// Each calls f for every page in registration order.
func (self *Registry) Each(f func(id PageID, page Page)) {
	for i := range self.entries {
		f(self.entries[i].id, self.entries[i].page)
	}
}
