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

import (
	"io"
	"strings"

	"github.com/fatih/color"
)

// Colorizer applies basic coloring rules to logging output. The tag of each
// entry is printed in the tag color and the detail in the normal pen. Entries
// with a tag listed as a warning tag are printed entirely in the warning
// color.
type Colorizer struct {
	out      io.Writer
	tag      *color.Color
	warning  *color.Color
	warnTags map[string]bool
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer, warnTags ...string) Colorizer {
	c := Colorizer{
		out:      out,
		tag:      color.New(color.FgCyan),
		warning:  color.New(color.FgRed),
		warnTags: make(map[string]bool),
	}
	for _, t := range warnTags {
		c.warnTags[t] = true
	}
	return c
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	for _, s := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		tag, detail, found := strings.Cut(s, ": ")
		if !found {
			_, err = io.WriteString(c.out, s+"\n")
		} else if c.warnTags[tag] {
			_, err = c.warning.Fprintf(c.out, "%s: %s\n", tag, detail)
		} else {
			_, err = io.WriteString(c.out, c.tag.Sprint(tag)+": "+detail+"\n")
		}
		if err != nil {
			return 0, err
		}
	}
	return len(p), nil
}
