package display

import (
	"strings"
	"sync"
)

// Virtual is an in-memory character device: the test double for
// TextDisplay and the backing screen of the terminal sim. Cursor
// addressing is 1-based like the real controllers.
type Virtual struct {
	mu     sync.Mutex
	width  uint8
	height uint8
	grid   []byte
	y, x   uint8
}

var _ Devicer = new(Virtual)

func NewVirtual(height, width uint8) *Virtual {
	self := &Virtual{
		width:  width,
		height: height,
		grid:   make([]byte, int(height)*int(width)),
		y:      1,
		x:      1,
	}
	for i := range self.grid {
		self.grid[i] = ' '
	}
	return self
}

func (self *Virtual) Clear() {
	self.mu.Lock()
	defer self.mu.Unlock()

	for i := range self.grid {
		self.grid[i] = ' '
	}
	self.y, self.x = 1, 1
}

func (self *Virtual) CursorYX(y, x uint8) bool {
	self.mu.Lock()
	defer self.mu.Unlock()

	if y < 1 || y > self.height || x < 1 || x > self.width {
		return false
	}
	self.y, self.x = y, x
	return true
}

func (self *Virtual) Write(b []byte) {
	self.mu.Lock()
	defer self.mu.Unlock()

	for _, ch := range b {
		if self.x > self.width {
			break
		}
		i := int(self.y-1)*int(self.width) + int(self.x-1)
		self.grid[i] = ch
		self.x++
	}
}

// Frame returns the screen as height lines joined with newline.
func (self *Virtual) Frame() string {
	self.mu.Lock()
	defer self.mu.Unlock()

	rows := make([]string, self.height)
	for y := 0; y < int(self.height); y++ {
		begin := y * int(self.width)
		rows[y] = string(self.grid[begin : begin+int(self.width)])
	}
	return strings.Join(rows, "\n")
}

func (self *Virtual) FrameLines() []string {
	return strings.Split(self.Frame(), "\n")
}
