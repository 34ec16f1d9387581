package display

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	"github.com/paulrosania/go-charset/charset"
	_ "github.com/paulrosania/go-charset/data"
	"github.com/temoto/alive/v2"
)

type Config struct {
	Codepage    string
	Height      uint32
	Width       uint32
	ScrollDelay time.Duration
}

type Devicer interface {
	Clear()
	CursorYX(y, x uint8) bool
	Write(b []byte)
}

// TextDisplay drives a character device from Content frames: codepage
// translation, right padding, marquee scroll for overlong lines. The
// scroll ticker is the only goroutine, everything else happens on the
// caller's loop.
type TextDisplay struct { //nolint:maligned
	alive *alive.Alive
	mu    sync.Mutex
	dev   Devicer
	tr    atomic.Value
	width uint32
	rows  [][]byte
	curY  int
	curX  int

	tickd time.Duration
	tick  uint32
	upd   chan<- struct{}
}

func NewTextDisplay(opt *Config) (*TextDisplay, error) {
	if opt == nil {
		panic("code error display config=nil")
	}
	if opt.Width < 1 || opt.Width > MaxWidth || opt.Height < 1 || opt.Height > MaxHeight {
		return nil, errors.NotValidf("display size=%dx%d", opt.Height, opt.Width)
	}
	self := &TextDisplay{
		alive: alive.NewAlive(),
		tickd: opt.ScrollDelay,
		width: opt.Width,
		rows:  make([][]byte, opt.Height),
		curY:  -1,
		curX:  -1,
	}

	if opt.Codepage != "" {
		if err := self.SetCodepage(opt.Codepage); err != nil {
			return nil, errors.Trace(err)
		}
	}

	return self, nil
}

func (self *TextDisplay) SetCodepage(cp string) error {
	self.mu.Lock()
	defer self.mu.Unlock()

	tr, err := charset.TranslatorTo(cp)
	if err != nil {
		return err
	}
	self.tr.Store(tr)
	return nil
}

func (self *TextDisplay) SetDevice(dev Devicer) {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.dev = dev
}

func (self *TextDisplay) SetScrollDelay(d time.Duration) {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.tickd = d
}

// SetUpdateChan delivers a signal after each device flush. Send is
// blocking, consumer should buffer.
func (self *TextDisplay) SetUpdateChan(ch chan<- struct{}) {
	self.upd = ch
}

func (self *TextDisplay) Clear() {
	self.mu.Lock()
	defer self.mu.Unlock()

	for i := range self.rows {
		self.rows[i] = nil
	}
	self.curY, self.curX = -1, -1
	self.flush()
}

// Render shows a Content frame. Selection hint is ignored here, pages
// already bracket their selection in text; the cursor hint moves the
// hardware cursor for edit pages.
func (self *TextDisplay) Render(c *Content) {
	self.mu.Lock()
	defer self.mu.Unlock()

	h := len(self.rows)
	for i := 0; i < h; i++ {
		if i < c.Height() {
			self.rows[i] = self.translate(c.Line(i))
		} else {
			self.rows[i] = nil
		}
	}
	if y, x, ok := c.Cursor(); ok && y < h && x < int(self.width) {
		self.curY, self.curX = y, x
	} else {
		self.curY, self.curX = -1, -1
	}
	atomic.StoreUint32(&self.tick, 0)
	self.flush()
}

func (self *TextDisplay) Tick() {
	self.mu.Lock()
	defer self.mu.Unlock()

	atomic.AddUint32(&self.tick, 1)
	self.flush()
}

// Run blocks driving the marquee scroll until Stop. No-op when
// scroll delay is not configured.
func (self *TextDisplay) Run() {
	self.mu.Lock()
	delay := self.tickd
	self.mu.Unlock()
	if delay == 0 {
		return
	}
	tmr := time.NewTicker(delay)
	stopch := self.alive.StopChan()

	for self.alive.IsRunning() {
		select {
		case <-tmr.C:
			self.Tick()
		case <-stopch:
			tmr.Stop()
			return
		}
	}
}

func (self *TextDisplay) Stop() {
	self.alive.Stop()
	self.alive.Wait()
}

// sometimes returns slice into shared spaceBytes
// sometimes returns `b` (len>=width-1)
// sometimes allocates new buffer
func (self *TextDisplay) JustCenter(b []byte) []byte {
	l := len(b)
	w := int(atomic.LoadUint32(&self.width))

	// optimize short paths
	if l == 0 {
		return spaceBytes[:w]
	}
	if l >= w-1 {
		return b
	}
	padtotal := w - l
	n := padtotal / 2
	padleft := spaceBytes[:n]
	padright := spaceBytes[:n+padtotal%2] // account for odd length
	buf := make([]byte, 0, w)
	buf = append(append(append(buf, padleft...), b...), padright...)
	return buf
}

// returns `b` when len>=width
// otherwise pads with spaces
func (self *TextDisplay) PadRight(b []byte) []byte {
	return PadSpace(b, atomic.LoadUint32(&self.width))
}

func (self *TextDisplay) Translate(s string) []byte {
	return self.translate([]byte(s))
}

func (self *TextDisplay) translate(b []byte) []byte {
	if len(b) == 0 {
		return spaceBytes[:0]
	}

	result := b
	tr, ok := self.tr.Load().(charset.Translator)
	if ok && tr != nil {
		_, tb, err := tr.Translate(result, true)
		if err != nil {
			panic(err)
		}
		// translator reuses single internal buffer, make a copy
		result = append([]byte(nil), tb...)
	} else {
		result = append([]byte(nil), result...)
	}

	return self.PadRight(result)
}

func (self *TextDisplay) flush() {
	if self.dev == nil {
		return
	}
	var buf [MaxWidth]byte
	tick := atomic.LoadUint32(&self.tick)

	for y := range self.rows {
		b := buf[:self.width]
		n := scrollWrap(b, self.rows[y], tick)
		// no padding: "erase" modified area, for now - whole line
		if n < self.width {
			self.dev.CursorYX(uint8(y+1), 1)
			self.dev.Write(spaceBytes[:self.width])
		}
		if len(self.rows[y]) > 0 {
			self.dev.CursorYX(uint8(y+1), 1)
			self.dev.Write(b[:n])
		}
	}
	if self.curY >= 0 {
		self.dev.CursorYX(uint8(self.curY+1), uint8(self.curX+1))
	}

	if self.upd != nil {
		self.upd <- struct{}{}
	}
}

// relies that len(buf) == display width
func scrollWrap(buf []byte, content []byte, tick uint32) uint32 {
	length := uint32(len(content))
	width := uint32(len(buf))
	gap := uint32(width / 2)
	n := 0
	if length <= width {
		n = copy(buf, content)
		copy(buf[n:], spaceBytes)
		return uint32(n)
	}

	offset := tick % (length + gap)
	if offset < length {
		n = copy(buf, content[offset:])
	} else {
		gap = gap - (offset - length)
	}
	n += copy(buf[n:], spaceBytes[:gap])
	n += copy(buf[n:], content[0:])
	return uint32(n)
}
