package setting

import (
	"encoding"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/hmikit/multipage/log2"
	"github.com/juju/errors"
	"github.com/temoto/extremofile"
)

type Stater interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

type storage interface {
	Read() ([]byte, error)
	io.Writer
}

// Persist binds a Stater to crash-safe storage. With empty root it
// degrades to a no-op so the sim runs without any writable
// filesystem.
type Persist struct {
	sync.Mutex
	log     *log2.Log
	tag     string
	target  Stater
	storage storage
}

func (self *Persist) Init(tag string, target Stater, root string, log *log2.Log) error {
	if tag == "" {
		return errors.NotValidf("persist empty tag")
	}
	self.tag = tag
	self.log = log
	if root == "" {
		self.log.Debugf("persist %s disabled", self.tag)
		return nil
	}
	if target == nil {
		panic("code error persist target nil")
	}
	self.target = target
	self.storage = extremofile.New(extremofile.Config{
		Dir:      filepath.Join(root, tag),
		DirPerm:  0755,
		FilePerm: 0644,
	})
	return nil
}

func (self *Persist) Enabled() bool { return self.storage != nil }

func (self *Persist) Load() error {
	if self.tag == "" {
		panic("code error persist must call .Init() first")
	}
	if self.storage == nil {
		return nil
	}
	self.Lock()
	defer self.Unlock()
	tbegin := time.Now()
	b, err := self.storage.Read()
	self.log.Debugf("persist %s storage.read duration=%v", self.tag, time.Since(tbegin))
	if b != nil {
		if err != nil {
			self.log.Errorf("persist %s ignore non-critical storage err=%v", self.tag, err)
		}
		err = self.target.UnmarshalBinary(b)
	}
	return errors.Annotatef(err, "persist %s Load", self.tag)
}

func (self *Persist) Store() error {
	if self.tag == "" {
		panic("code error persist must call .Init() first")
	}
	if self.storage == nil {
		return nil
	}
	self.Lock()
	defer self.Unlock()
	b, err := self.target.MarshalBinary()
	if err == nil {
		tbegin := time.Now()
		_, err = self.storage.Write(b)
		self.log.Debugf("persist %s storage.write duration=%v", self.tag, time.Since(tbegin))
	}
	return errors.Annotatef(err, "persist %s Store", self.tag)
}
