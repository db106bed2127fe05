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

package logger

// Permission decides whether a call to Log() or Logf() results in an entry.
// A component that can be silenced passes its own Permission with every log
// call.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (_ allow) AllowLogging() bool {
	return true
}

// Allow is the Permission for log calls that are never silenced.
var Allow Permission = allow{}

// Quiet is a Permission that can be toggled. The zero value allows logging.
type Quiet struct {
	Silent bool
}

// AllowLogging implements the Permission interface.
func (q *Quiet) AllowLogging() bool {
	return q == nil || !q.Silent
}
