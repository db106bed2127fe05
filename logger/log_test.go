// This file is part of nhshield.
//
// nhshield is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// nhshield is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with nhshield.  If not, see <https://www.gnu.org/licenses/>.

package logger_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/fatih/color"
	"github.com/jetsetilly/nhshield/logger"
	"github.com/jetsetilly/nhshield/test"
)

func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &test.CompareWriter{}

	log.Write(w)
	test.ExpectSuccess(t, w.Compare(""))

	log.Log(logger.Allow, "layout", "plan requires 248 bytes")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "layout: plan requires 248 bytes\n")

	// clear the writer buffer before continuing, makes comparisons easier to
	// manage
	w.Clear()

	log.Log(logger.Allow, "patch", "equipped child shield")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "layout: plan requires 248 bytes\npatch: equipped child shield\n")

	// asking for too many entries in a Tail() should be okay
	w.Clear()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "layout: plan requires 248 bytes\npatch: equipped child shield\n")

	// asking for fewer entries is okay too
	w.Clear()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "patch: equipped child shield\n")

	// and no entries
	w.Clear()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestRepeatedEntries(t *testing.T) {
	log := logger.NewLogger(100)
	w := &test.CompareWriter{}

	log.Log(logger.Allow, "patch", "hand matrix updated")
	log.Log(logger.Allow, "patch", "hand matrix updated")
	log.Log(logger.Allow, "patch", "hand matrix updated")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "patch: hand matrix updated (repeat x3)\n")
}

func TestMaxEntries(t *testing.T) {
	log := logger.NewLogger(2)
	w := &test.CompareWriter{}

	log.Log(logger.Allow, "a", "1")
	log.Log(logger.Allow, "b", "2")
	log.Log(logger.Allow, "c", "3")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "b: 2\nc: 3\n")
}

// test permissions by randomising whether logging is allowed or not
type prohibitLogging struct {
	allow int
}

func (p prohibitLogging) AllowLogging() bool {
	return p.allow > 50
}

func TestPermissions(t *testing.T) {
	log := logger.NewLogger(100)
	w := &test.CompareWriter{}

	var p prohibitLogging

	for i := 0; i < 100; i++ {
		p.allow = rand.Intn(100)
		log.Clear()
		w.Clear()
		log.Log(p, "tag", "detail")
		log.Write(w)
		if p.AllowLogging() {
			test.ExpectEquality(t, w.String(), "tag: detail\n")
		} else {
			test.ExpectEquality(t, w.String(), "")
		}
	}

	q := &logger.Quiet{Silent: true}
	log.Clear()
	w.Clear()
	log.Log(q, "tag", "detail")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")
}

// the Log() function explicitly handles error types by using the Error() result
func TestErrorLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &test.CompareWriter{}

	err := errors.New("test error")

	log.Log(logger.Allow, "tag", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: test error\n")

	log.Clear()
	w.Clear()

	log.Logf(logger.Allow, "tag", "wrapped: %v", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: wrapped: test error\n")
}

type stringerTest struct{}

func (_ stringerTest) String() string {
	return "stringer test"
}

func TestStringerLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &test.CompareWriter{}

	log.Log(logger.Allow, "tag", stringerTest{})
	log.Log(logger.Allow, "tag", 100)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: stringer test\ntag: 100\n")
}

func TestEcho(t *testing.T) {
	color.NoColor = true

	log := logger.NewLogger(100)
	w := &test.CompareWriter{}
	log.SetEcho(logger.NewColorizer(w, "settings"))

	log.Log(logger.Allow, "settings", "malformed file")
	log.Log(logger.Allow, "patch", "ok")
	test.ExpectEquality(t, w.String(), "settings: malformed file\npatch: ok\n")

	log.SetEcho(nil)
	log.Log(logger.Allow, "patch", "not echoed")
	test.ExpectEquality(t, w.String(), "settings: malformed file\npatch: ok\n")
}
