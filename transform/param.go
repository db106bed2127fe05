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

package transform

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Param is a single float value in a Descriptor. It is safe to Set() a Param
// from a goroutine other than the one reading it.
type Param struct {
	name     string
	def      float64
	min      float64
	max      float64
	value    atomic.Value // float64
	hookPost func(value float64) error
}

func newParam(name string, def float64, min float64, max float64) *Param {
	p := &Param{name: name, def: def, min: min, max: max}
	p.value.Store(def)
	return p
}

func (p *Param) String() string {
	return fmt.Sprintf("%.3f", p.Get())
}

// Name of the Param as used in the settings file and on the command line.
func (p *Param) Name() string {
	return p.name
}

// Limits returns the range of values suggested for user interfaces. The range
// is not enforced by Set().
func (p *Param) Limits() (float64, float64) {
	return p.min, p.max
}

// Set new value to Param. New value can be a float64, float32, int or a
// string.
func (p *Param) Set(v any) error {
	var nv float64
	switch v := v.(type) {
	case float64:
		nv = v
	case float32:
		nv = float64(v)
	case int:
		nv = float64(v)
	case string:
		var err error
		nv, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("transform: cannot set %s: %w", p.name, err)
		}
	default:
		return fmt.Errorf("transform: cannot convert %T to a value for %s", v, p.name)
	}

	p.value.Store(nv)

	if p.hookPost != nil {
		return p.hookPost(nv)
	}

	return nil
}

// Get returns the current value of the Param.
func (p *Param) Get() float64 {
	return p.value.Load().(float64)
}

// Reset sets the Param to its default value.
func (p *Param) Reset() error {
	return p.Set(p.def)
}
