package page

import (
	"strings"

	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/hmi"
	"github.com/hmikit/multipage/input"
	"github.com/skip2/go-qrcode"
)

// QR shows a payload as a QR code on adapters that can draw block
// art, with a plain text fallback for character displays. Encoding
// happens once, in NewQR; an impossible payload degrades to the
// fallback text plus the encoder error.
type QR struct {
	code  *qrcode.QRCode
	err   error
	Title string
	Text  string
	Back  hmi.PageID
	Map   Keymap
}

func NewQR(title, text string, back hmi.PageID) *QR {
	p := &QR{Title: title, Text: text, Back: back}
	p.code, p.err = qrcode.New(text, qrcode.Medium)
	if p.err == nil {
		p.code.DisableBorder = true
	}
	return p
}

// Art returns the code as terminal block art, one string per row.
// Nil when encoding failed.
func (self *QR) Art() []string {
	if self.err != nil {
		return nil
	}
	s := strings.TrimRight(self.code.ToString(false), "\n")
	return strings.Split(s, "\n")
}

// Size returns the module count per side, 0 when encoding failed.
func (self *QR) Size() int {
	if self.err != nil {
		return 0
	}
	return len(self.code.Bitmap())
}

func (self *QR) Render(c *display.Content) {
	c.SetLine(0, self.Title)
	c.SetLine(1, self.Text)
	if self.err != nil {
		c.Linef(2, "qr error: %s", self.err.Error())
	}
}

func (self *QR) Handle(e input.Event) hmi.Nav {
	op, _ := self.Map.Resolve(e)
	switch op {
	case OpAction, OpBack:
		if self.Back != "" {
			return hmi.GoTo(self.Back)
		}
	}
	return hmi.Stay()
}

func (self *QR) Links() []hmi.PageID { return targets(self.Back) }
