package tele

import (
	"strconv"
	"strings"
)

// Wire payloads are single-line k=v fields, readable with any broker
// client. Values with spaces or '=' are quoted Go-style.

func appendKV(b []byte, key, value string) []byte {
	if len(b) > 0 {
		b = append(b, ' ')
	}
	b = append(b, key...)
	b = append(b, '=')
	if value == "" || strings.ContainsAny(value, " =\"\n") {
		value = strconv.Quote(value)
	}
	return append(b, value...)
}

// parseKV is forgiving: damaged fields are dropped, the rest of the
// payload still parses. Inbound commands come from operators typing
// into broker consoles.
func parseKV(b []byte) map[string]string {
	out := make(map[string]string)
	s := strings.TrimSpace(string(b))
	for len(s) > 0 {
		eq := strings.IndexByte(s, '=')
		if eq <= 0 {
			break
		}
		key := s[:eq]
		rest := s[eq+1:]
		var value string
		if strings.HasPrefix(rest, `"`) {
			q, err := strconv.QuotedPrefix(rest)
			if err != nil {
				break
			}
			value, _ = strconv.Unquote(q)
			rest = rest[len(q):]
		} else if sp := strings.IndexByte(rest, ' '); sp >= 0 {
			value, rest = rest[:sp], rest[sp:]
		} else {
			value, rest = rest, ""
		}
		out[key] = value
		s = strings.TrimLeft(rest, " ")
	}
	return out
}
