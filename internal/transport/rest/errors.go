package rest

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/kailas-cloud/vecdesk/internal/domain"
)

// maxRawMessage caps the raw body appended to a status text.
const maxRawMessage = 500

// classify turns a non-2xx response into a TransportError.
func classify(op, method, path string, status int, body []byte) *domain.TransportError {
	msg := extractMessage(body)
	if msg == "" {
		msg = fallbackMessage(status, body)
	}
	return &domain.TransportError{
		Op:      op,
		Method:  method,
		Path:    path,
		Status:  status,
		Message: msg,
	}
}

// extractMessage reads the store's error shapes:
// {"error": "..."}, {"error": [{"message": "..."}]}, {"error": {"message": "..."}}
// and {"message": "..."}.
func extractMessage(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	res := gjson.ParseBytes(body)

	if e := res.Get("error"); e.Exists() {
		switch {
		case e.Type == gjson.String:
			if s := strings.TrimSpace(e.String()); s != "" {
				return s
			}
		case e.IsArray():
			var msgs []string
			for _, item := range e.Array() {
				if m := strings.TrimSpace(item.Get("message").String()); m != "" {
					msgs = append(msgs, m)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		case e.IsObject():
			if m := strings.TrimSpace(e.Get("message").String()); m != "" {
				return m
			}
		}
	}

	if m := res.Get("message"); m.Type == gjson.String {
		return strings.TrimSpace(m.String())
	}
	return ""
}

// fallbackMessage is the status text, followed by the raw body when there
// is one (truncated).
func fallbackMessage(status int, body []byte) string {
	text := http.StatusText(status)
	if text == "" {
		text = "unexpected status"
	}
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return text
	}
	return text + ": " + truncate(raw, maxRawMessage)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
