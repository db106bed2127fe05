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

package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/nhshield/curated"
	"github.com/jetsetilly/nhshield/settings"
	"github.com/jetsetilly/nhshield/test"
	"github.com/jetsetilly/nhshield/transform"
)

const complete = `
mode = "adult"

[hand_matrix]
r_x = 0.0
r_y = 10.0
r_z = 90.0
t_x = 100.0
t_y = -200.0
t_z = 0.0
s = 1.5

[back_matrix]
r_x = 0.0
r_y = 0.0
r_z = 0.0
t_x = 0.0
t_y = 0.0
t_z = 0.0
s = 0.75
`

func TestParse(t *testing.T) {
	doc, err := settings.Parse([]byte(complete))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, doc.Mode, settings.Adult)
	test.ExpectEquality(t, doc.HandMatrix, transform.Values{RotY: 10, RotZ: 90, TransX: 100, TransY: -200, Scale: 1.5})
	test.ExpectEquality(t, doc.BackMatrix, transform.Values{Scale: 0.75})
}

func TestMissingFile(t *testing.T) {
	doc, err := settings.Load(filepath.Join(t.TempDir(), settings.Filename))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, doc, settings.Default())
	test.ExpectEquality(t, doc.Mode, settings.Child)
	test.ExpectEquality(t, doc.HandMatrix, transform.HandDefault)
}

func TestFallback(t *testing.T) {
	for _, s := range []string{
		// not toml
		`{"mode": "adult"}`,

		// missing a field
		`mode = "adult"
[hand_matrix]
r_x = 0.0
[back_matrix]
s = 1.0`,

		// missing mode
		complete[len("\nmode = \"adult\"\n"):],

		// wrong type
		`mode = 1`,

		// unknown mode
		`mode = "teen"` + complete[len("\nmode = \"adult\""):],
	} {
		doc, err := settings.Parse([]byte(s))
		test.ExpectFailure(t, err, s)
		test.ExpectEquality(t, curated.Is(err, settings.ConfigLoadFailure), true, s)
		test.ExpectEquality(t, doc, settings.Default(), s)
	}
}

func TestSaveLoad(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "nested", settings.Filename)

	doc := settings.Default()
	doc.Mode = settings.Adult
	doc.HandMatrix.RotZ = 45
	doc.BackMatrix.Scale = 0.5
	test.DemandSuccess(t, settings.Save(pth, doc))

	ld, err := settings.Load(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ld, doc)

	// unreadable settings file is the same as a malformed one
	test.DemandSuccess(t, os.WriteFile(pth, []byte("mode = "), 0o600))
	ld, err = settings.Load(pth)
	test.ExpectEquality(t, curated.Is(err, settings.ConfigLoadFailure), true)
	test.ExpectEquality(t, ld, settings.Default())
}
