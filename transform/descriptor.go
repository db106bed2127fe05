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
	"strings"

	"github.com/jetsetilly/nhshield/fixedpoint"
)

// Values is a snapshot of a Descriptor. The field tags match the keys used by
// the settings file.
type Values struct {
	RotX   float64 `toml:"r_x"`
	RotY   float64 `toml:"r_y"`
	RotZ   float64 `toml:"r_z"`
	TransX float64 `toml:"t_x"`
	TransY float64 `toml:"t_y"`
	TransZ float64 `toml:"t_z"`
	Scale  float64 `toml:"s"`
}

// HandDefault is the transform that places the child's shield in the hand of
// the adult model.
var HandDefault = Values{RotZ: 155, TransX: 512, TransY: -335, Scale: 1}

// BackDefault is the transform applied to the adult shield in all positions.
var BackDefault = Values{Scale: 1}

// Matrix composes the transform matrix. Rotation about the x, y and z axes is
// roll, pitch and heading respectively.
func (v Values) Matrix() fixedpoint.Matrix {
	return fixedpoint.Compose(v.RotX, v.RotY, v.RotZ, v.TransX, v.TransY, v.TransZ, v.Scale)
}

// Pack returns the transform matrix in the microcode's fixed-point format.
func (v Values) Pack() [fixedpoint.MatrixSize]byte {
	return v.Matrix().Pack()
}

func (v Values) String() string {
	return fmt.Sprintf("r=(%g, %g, %g) t=(%g, %g, %g) s=%g",
		v.RotX, v.RotY, v.RotZ, v.TransX, v.TransY, v.TransZ, v.Scale)
}

// Descriptor is the live, editable version of Values.
type Descriptor struct {
	RotX   *Param
	RotY   *Param
	RotZ   *Param
	TransX *Param
	TransY *Param
	TransZ *Param
	Scale  *Param

	// called after any Param has changed. suspended while a Descriptor is
	// being loaded so that a load results in a single call
	hook    func() error
	loading bool
}

// NewDescriptor is the preferred method of initialisation for the Descriptor
// type. The values passed are the defaults used by Reset().
func NewDescriptor(def Values) *Descriptor {
	d := &Descriptor{
		RotX:   newParam("r_x", def.RotX, -360, 360),
		RotY:   newParam("r_y", def.RotY, -360, 360),
		RotZ:   newParam("r_z", def.RotZ, -360, 360),
		TransX: newParam("t_x", def.TransX, -1000, 1000),
		TransY: newParam("t_y", def.TransY, -1000, 1000),
		TransZ: newParam("t_z", def.TransZ, -1000, 1000),
		Scale:  newParam("s", def.Scale, -5, 5),
	}

	for _, p := range d.Params() {
		p.hookPost = func(_ float64) error {
			return d.changed()
		}
	}

	return d
}

func (d *Descriptor) changed() error {
	if d.loading || d.hook == nil {
		return nil
	}
	return d.hook()
}

// SetHook sets the function to be called after any Param in the Descriptor
// has changed. Note that even if the value hasn't changed, the callback will
// be executed.
func (d *Descriptor) SetHook(f func() error) {
	d.hook = f
}

// Params returns the Params of the Descriptor in a fixed order.
func (d *Descriptor) Params() []*Param {
	return []*Param{d.RotX, d.RotY, d.RotZ, d.TransX, d.TransY, d.TransZ, d.Scale}
}

// Param returns the Param with the specified name.
func (d *Descriptor) Param(name string) (*Param, bool) {
	for _, p := range d.Params() {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// Snapshot returns the current values of the Descriptor.
func (d *Descriptor) Snapshot() Values {
	return Values{
		RotX:   d.RotX.Get(),
		RotY:   d.RotY.Get(),
		RotZ:   d.RotZ.Get(),
		TransX: d.TransX.Get(),
		TransY: d.TransY.Get(),
		TransZ: d.TransZ.Get(),
		Scale:  d.Scale.Get(),
	}
}

// Load sets every Param in the Descriptor. The hook is called once.
func (d *Descriptor) Load(v Values) error {
	return d.batch(func() error {
		for _, s := range []struct {
			p *Param
			v float64
		}{
			{d.RotX, v.RotX}, {d.RotY, v.RotY}, {d.RotZ, v.RotZ},
			{d.TransX, v.TransX}, {d.TransY, v.TransY}, {d.TransZ, v.TransZ},
			{d.Scale, v.Scale},
		} {
			if err := s.p.Set(s.v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reset every Param to its default value. The hook is called once.
func (d *Descriptor) Reset() error {
	return d.batch(func() error {
		for _, p := range d.Params() {
			if err := p.Reset(); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetString parses a list of name/value pairs and sets the named Params. The
// format of the string is:
//
//	r_z::90; t_x::512; s::1.5
//
// The hook is called once.
func (d *Descriptor) SetString(s string) error {
	return d.batch(func() error {
		for _, kv := range strings.Split(s, ";") {
			kv = strings.TrimSpace(kv)
			if kv == "" {
				continue
			}

			name, value, ok := strings.Cut(kv, "::")
			if !ok {
				return fmt.Errorf("transform: badly formed parameter: %s", kv)
			}

			p, ok := d.Param(strings.TrimSpace(name))
			if !ok {
				return fmt.Errorf("transform: unknown parameter: %s", name)
			}

			if err := p.Set(strings.TrimSpace(value)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *Descriptor) batch(f func() error) error {
	d.loading = true
	err := f()
	d.loading = false
	if err != nil {
		return err
	}
	return d.changed()
}
