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

// Package modalflag wraps the flag package of the standard library so that a
// command line can be divided into modes, each with its own flags.
//
// Arguments are given with NewArgs() and the flags for the top level added
// before calling Parse(). If sub-modes have been added with AddSubModes() then
// the first non-flag argument selects the mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("PLAN", "APPLY", "MATRIX")
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "APPLY":
//		md.NewMode()
//		base := md.AddAddress("base", 0x80400000, "address of patch block")
//		...
//	}
//
// Each call to NewMode() begins a new set of flags for the arguments that
// follow the mode selector. The first sub-mode is the default and is selected
// if no mode is named. Mode names are case insensitive and are always
// returned in upper case.
package modalflag
