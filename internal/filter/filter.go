// Package filter selects log entries by composing independent clauses with
// logical AND. Filtering runs standalone (log in, reduced log out) or ahead
// of rendering to restrict which events reach the canvas.
package filter

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/pixelapse/internal/canvas"
	"github.com/san-kum/pixelapse/internal/parser"
)

// Filter holds the enabled clauses. Zero-value clauses are disabled; an
// empty filter accepts every event.
type Filter struct {
	// After and Before are both inclusive: After <= t <= Before.
	After  *time.Time
	Before *time.Time
	// Colors matches events whose palette index is in the set. Events
	// without an index never match while this clause is enabled.
	Colors []int
	Region *canvas.Region
	Kinds  []canvas.ActionKind
	// Users matches plain user identifiers as they appear in the log.
	Users []string
	// Keys are user log keys; an event matches when the sha256 digest of
	// "time,x,y,index,key" equals the event's user hash.
	Keys []string
}

// Empty reports whether no clause is enabled.
func (f *Filter) Empty() bool {
	return f.After == nil && f.Before == nil && len(f.Colors) == 0 &&
		f.Region == nil && len(f.Kinds) == 0 && len(f.Users) == 0 && len(f.Keys) == 0
}

// Match reports whether the event passes every enabled clause.
func (f *Filter) Match(e canvas.Event) bool {
	if f.After != nil && e.Time.Before(*f.After) {
		return false
	}
	if f.Before != nil && e.Time.After(*f.Before) {
		return false
	}
	if f.Region != nil && !f.Region.Contains(e.X, e.Y) {
		return false
	}
	if len(f.Colors) > 0 {
		if !e.HasIndex() {
			return false
		}
		ok := false
		for _, c := range f.Colors {
			if e.Index == c {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(f.Kinds) > 0 {
		ok := false
		for _, k := range f.Kinds {
			if e.Kind == k {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(f.Users) > 0 || len(f.Keys) > 0 {
		return f.matchUser(e)
	}
	return true
}

// matchUser runs last: digesting is expensive, so it only happens for events
// that already passed the cheap clauses.
func (f *Filter) matchUser(e canvas.Event) bool {
	for _, u := range f.Users {
		if e.User == u {
			return true
		}
	}
	for _, key := range f.Keys {
		if UserDigest(e, key) == e.User {
			return true
		}
	}
	return false
}

// UserDigest computes the keyed digest pxls uses to anonymize users:
// sha256(time "," x "," y "," index "," key), hex encoded.
func UserDigest(e canvas.Event, key string) string {
	h := sha256.New()
	h.Write([]byte(e.Time.Format(parser.TimeLayout)))
	h.Write([]byte(","))
	h.Write([]byte(strconv.Itoa(e.X)))
	h.Write([]byte(","))
	h.Write([]byte(strconv.Itoa(e.Y)))
	h.Write([]byte(","))
	if e.HasIndex() {
		h.Write([]byte(strconv.Itoa(e.Index)))
	}
	h.Write([]byte(","))
	h.Write([]byte(key))
	return hex.EncodeToString(h.Sum(nil))
}

// LoadUserSet reads a newline-delimited list of user identifiers, skipping
// blank lines and surrounding whitespace.
func LoadUserSet(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out = append(out, strings.Fields(sc.Text())...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
