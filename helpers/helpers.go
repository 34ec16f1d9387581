package helpers

import (
	"io"
	"strings"
	"time"

	"github.com/juju/errors"
)

func FoldErrors(errs []error) error {
	ss := make([]string, 0, len(errs))
	for _, e := range errs {
		if e != nil {
			ss = append(ss, e.Error())
		}
	}
	if len(ss) == 0 {
		return nil
	}
	return errors.New(strings.Join(ss, "\n"))
}

// AddWrap returns current+delta wrapped into [0,max).
// Delta of any magnitude is fine, rotary encoders send bursts.
func AddWrap(current, max uint8, delta int) uint8 {
	if max == 0 {
		return 0
	}
	m := int32(max)
	v := (int32(current) + int32(delta)) % m
	if v < 0 {
		v += m
	}
	return uint8(v)
}

func IntSecondDefault(x int, def time.Duration) time.Duration {
	if x == 0 {
		return def
	}
	return time.Duration(x) * time.Second
}

func IntMillisecondDefault(x int, def time.Duration) time.Duration {
	if x == 0 {
		return def
	}
	return time.Duration(x) * time.Millisecond
}

func WriteAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		if n == len(b) {
			return nil
		}
		b = b[n:]
	}
	return nil
}
