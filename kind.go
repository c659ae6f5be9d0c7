package faultenvelope

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"unicode"
)

// Kind classifies a fault. Every Kind carries a fixed HTTP status code and a
// default message, declared together at the definition site.
type Kind int

const (
	// KindUnexpected is the zero value: an unset kind is never a success.
	KindUnexpected Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindGone
	KindUnprocessable
	KindRateLimited
	KindUnavailable
	KindTimeout

	builtinKinds
)

type kindInfo struct {
	name    string
	status  int
	message string
}

// builtins is indexed by Kind. An empty message falls back to StatusName.
var builtins = [builtinKinds]kindInfo{
	KindUnexpected:    {"Unexpected", http.StatusInternalServerError, ""},
	KindBadRequest:    {"BadRequest", http.StatusBadRequest, "Bad request"},
	KindUnauthorized:  {"Unauthorized", http.StatusUnauthorized, "Unauthorized"},
	KindForbidden:     {"Forbidden", http.StatusForbidden, "Forbidden"},
	KindNotFound:      {"NotFound", http.StatusNotFound, "Not found"},
	KindConflict:      {"Conflict", http.StatusConflict, "Conflict"},
	KindGone:          {"Gone", http.StatusGone, "Resource no longer exists"},
	KindUnprocessable: {"Unprocessable", http.StatusUnprocessableEntity, ""},
	KindRateLimited:   {"RateLimited", http.StatusTooManyRequests, "Rate limited"},
	KindUnavailable:   {"Unavailable", http.StatusServiceUnavailable, "Service unavailable"},
	KindTimeout:       {"Timeout", http.StatusGatewayTimeout, "Request timed out"},
}

var registry = struct {
	sync.RWMutex
	kinds  []kindInfo
	byName map[string]Kind
}{byName: builtinNames()}

func builtinNames() map[string]Kind {
	m := make(map[string]Kind, builtinKinds)
	for k, info := range builtins {
		m[info.name] = Kind(k)
	}
	return m
}

// DefineKind declares a new fault kind with its status code and default
// message. It is meant to be called from package-level var declarations or
// init functions, and panics if status is not a 4xx or 5xx code or if name is
// already taken.
//
//	var KindQuotaExceeded = faultenvelope.DefineKind("QuotaExceeded", 402, "Quota exceeded")
func DefineKind(name string, status int, message string) Kind {
	if name == "" {
		panic("faultenvelope: DefineKind with empty name")
	}
	if status < 400 || status > 599 {
		panic(fmt.Sprintf("faultenvelope: kind %q has invalid status %d", name, status))
	}

	registry.Lock()
	defer registry.Unlock()

	if _, dup := registry.byName[name]; dup {
		panic(fmt.Sprintf("faultenvelope: kind %q already defined", name))
	}
	k := builtinKinds + Kind(len(registry.kinds))
	registry.kinds = append(registry.kinds, kindInfo{name: name, status: status, message: message})
	registry.byName[name] = k
	return k
}

// LookupKind returns the kind declared under name.
func LookupKind(name string) (Kind, bool) {
	registry.RLock()
	defer registry.RUnlock()
	k, ok := registry.byName[name]
	return k, ok
}

func (k Kind) info() (kindInfo, bool) {
	if k >= 0 && k < builtinKinds {
		return builtins[k], true
	}
	registry.RLock()
	defer registry.RUnlock()
	i := int(k - builtinKinds)
	if i >= 0 && i < len(registry.kinds) {
		return registry.kinds[i], true
	}
	return kindInfo{}, false
}

// String returns the name the kind was declared with.
func (k Kind) String() string {
	if info, ok := k.info(); ok {
		return info.name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// StatusFor returns the HTTP status code of k. Kinds not obtained from this
// package resolve to 500.
func StatusFor(k Kind) int {
	if info, ok := k.info(); ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// DefaultMessage returns the default message of k, or the canonical name of
// its status when none was declared.
func DefaultMessage(k Kind) string {
	info, ok := k.info()
	if ok && info.message != "" {
		return info.message
	}
	return StatusName(StatusFor(k))
}

// StatusName returns the canonical status text as a single identifier, e.g.
// "InternalServerError" for 500 and "Gone" for 410. Unknown codes yield their
// decimal form.
func StatusName(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return strconv.Itoa(status)
	}
	out := make([]rune, 0, len(text))
	upper := true
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		out = append(out, r)
	}
	return string(out)
}
