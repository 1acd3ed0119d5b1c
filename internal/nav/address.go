package nav

import (
	"net/url"
	"strings"
)

// Address keys owned by navigation. Catalog filter keys live in package catalog.
const (
	KeyPage      = "page"
	KeyTask      = "task"
	KeyTaskID    = "task_id"
	KeyFavToggle = "favt"
	KeyAck       = "ack"
	KeyAPI       = "api"
)

// Address is the shareable query-string form of the navigation state. It is
// immutable: every With/Without returns a copy.
type Address struct {
	v url.Values
}

func NewAddress() Address { return Address{v: url.Values{}} }

// ParseAddress parses a raw query string. Malformed pairs are skipped; the
// well-formed remainder is kept.
func ParseAddress(rawQuery string) Address {
	v, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if v == nil {
		v = url.Values{}
	}
	return Address{v: v}
}

func FromValues(v url.Values) Address {
	return Address{v: cloneValues(v)}
}

func (a Address) Get(key string) string {
	if a.v == nil {
		return ""
	}
	return a.v.Get(key)
}

func (a Address) Has(key string) bool {
	if a.v == nil {
		return false
	}
	_, ok := a.v[key]
	return ok
}

func (a Address) With(key, value string) Address {
	v := cloneValues(a.v)
	v.Set(key, value)
	return Address{v: v}
}

func (a Address) Without(keys ...string) Address {
	v := cloneValues(a.v)
	for _, k := range keys {
		v.Del(k)
	}
	return Address{v: v}
}

func (a Address) WithPage(p PageID) Address {
	if tok := p.Token(); tok != "" {
		return a.With(KeyPage, tok)
	}
	return a.Without(KeyPage)
}

// Page returns the recognized page the address asks for. An absent or
// unrecognized page value reports false.
func (a Address) Page() (PageID, bool) {
	return ParsePage(a.Get(KeyPage))
}

// TaskID returns the task the address targets, accepting the legacy task_id key.
func (a Address) TaskID() string {
	if id := strings.TrimSpace(a.Get(KeyTask)); id != "" {
		return id
	}
	return strings.TrimSpace(a.Get(KeyTaskID))
}

// Acknowledges reports whether the address carries the notice acknowledgment.
func (a Address) Acknowledges() bool {
	switch strings.ToLower(strings.TrimSpace(a.Get(KeyAck))) {
	case "1", "true":
		return true
	}
	return false
}

func (a Address) Values() url.Values { return cloneValues(a.v) }

func (a Address) Encode() string {
	if a.v == nil {
		return ""
	}
	return a.v.Encode()
}

// URL joins path and the encoded address.
func (a Address) URL(path string) string {
	if path == "" {
		path = "/"
	}
	q := a.Encode()
	if q == "" {
		return path
	}
	return path + "?" + q
}

func (a Address) Equal(b Address) bool { return a.Encode() == b.Encode() }

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, xs := range v {
		out[k] = append([]string(nil), xs...)
	}
	return out
}
