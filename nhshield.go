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

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/fatih/color"
	"github.com/jetsetilly/nhshield/displaylist"
	"github.com/jetsetilly/nhshield/fixedpoint"
	"github.com/jetsetilly/nhshield/layout"
	"github.com/jetsetilly/nhshield/logger"
	"github.com/jetsetilly/nhshield/modalflag"
	"github.com/jetsetilly/nhshield/patch"
	"github.com/jetsetilly/nhshield/rdram"
	"github.com/jetsetilly/nhshield/schedule"
	"github.com/jetsetilly/nhshield/settings"
	"github.com/jetsetilly/nhshield/statsview"
	"github.com/jetsetilly/nhshield/transform"
	"github.com/jetsetilly/nhshield/version"
)

// colours used in listings
var (
	regionName = color.New(color.FgCyan).SprintFunc()
	address    = color.New(color.FgYellow).SprintFunc()
	opcode     = color.New(color.FgGreen).SprintFunc()
)

func main() {
	os.Exit(launch(os.Stdout, os.Args[1:]))
}

// launch returns the value to be used with os.Exit().
func launch(output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("PLAN", "APPLY", "MATRIX")

	log := md.AddBool("log", false, "echo log to stderr")
	showVersion := md.AddBool("version", false, "print version and exit")
	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, "run stats server")
	}

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	if *showVersion {
		fmt.Fprintln(output, version.Banner())
		return 0
	}

	if *log {
		logger.SetEcho(logger.NewColorizer(os.Stderr, "settings"))
	} else {
		logger.SetEcho(nil)
	}

	if stats != nil && *stats {
		statsview.Launch(output)
	}

	switch md.Mode() {
	case "PLAN":
		err = plan(md, output)
	case "APPLY":
		err = apply(md, output)
	case "MATRIX":
		err = matrix(md, output)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return 20
	}

	return 0
}

func plan(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("Lists the regions of the patch block. If a base address is given the\ndisplay lists are shown as they would be written at that address.")

	base := md.AddAddress("base", 0, "relocate patch block to address")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	pln, err := patch.NewPlan()
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "patch block is %d bytes\n", pln.Size())

	var baseSet bool
	md.Visit(func(f string) {
		baseSet = baseSet || f == "base"
	})

	if !baseSet {
		for _, r := range pln.Regions() {
			fmt.Fprintf(output, "%s %s %4d\n", address(fmt.Sprintf("+%02x", r.Address)), regionName(fmt.Sprintf("%-24s", r.Name)), r.Size)
		}
		return nil
	}

	rel, err := pln.Relocate(*base)
	if err != nil {
		return err
	}

	return listing(output, rel, nil)
}

// listing writes every region in the relocated layout. Display lists are
// materialized and decoded. If mem is not nil then non-list regions are read
// from memory.
func listing(output io.Writer, rel *layout.Relocated, mem *rdram.Image) error {
	for _, r := range rel.Regions() {
		fmt.Fprintf(output, "%s %s\n", address(fmt.Sprintf("%08x", r.Address)), regionName(r.Name))

		var data []byte
		var err error
		switch {
		case r.IsList():
			data, err = rel.Materialize(r.Name)
		case mem != nil:
			data, err = mem.ReadBytes(r.Address, int(r.Size))
		default:
			continue
		}
		if err != nil {
			return err
		}

		if r.Size == fixedpoint.MatrixSize && !r.IsList() {
			for i := 0; i < len(data); i += 16 {
				fmt.Fprintf(output, "    %s\n", hex.EncodeToString(data[i:i+16]))
			}
			continue
		}

		cmds, err := displaylist.Decode(data)
		if err != nil {
			return err
		}
		for _, c := range cmds {
			fmt.Fprintf(output, "    %08x %08x  %s\n", c.Hi, c.Lo, opcode(c.String()))
		}
	}

	return nil
}

func apply(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("Applies the patch to an empty memory image and writes the journal of\nmemory writes to the named file, if one is given.")

	settingsFile := md.AddString("settings", settings.DefaultPath(), "settings file")
	model := md.AddAddress("model", 0, "base address of the adult player object")
	mode := md.AddString("mode", "", "override mode: child, adult")
	save := md.AddBool("save", false, "save settings after applying edits")
	viz := md.AddString("memviz", "", "write graph of patch context to file (dot format)")

	var handEdits, backEdits []string
	md.AddFunc("hand", "edit hand transform (eg. \"r_z::90; t_x::512\")", func(s string) error {
		handEdits = append(handEdits, s)
		return nil
	})
	md.AddFunc("back", "edit rescaled shield transform (eg. \"s::0.8\")", func(s string) error {
		backEdits = append(backEdits, s)
		return nil
	})

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var journalFile string
	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		journalFile = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	img := rdram.NewImage()
	shield, err := patch.NewShield(img)
	if err != nil {
		return err
	}

	doc, err := settings.Load(*settingsFile)
	if err != nil {
		logger.Log(logger.Allow, "settings", err)
	}
	if err := shield.ApplySettings(doc); err != nil {
		return err
	}

	if err := shield.HeapReady(img); err != nil {
		return err
	}

	var modelSet bool
	md.Visit(func(f string) {
		modelSet = modelSet || f == "model"
	})
	if modelSet {
		if err := shield.ModelChanged(*model); err != nil {
			return err
		}
	}

	if err := shield.SaveLoaded(); err != nil {
		return err
	}

	// edits are applied in the same way as they would be from a user
	// interface. they take effect on the next tick
	for _, e := range handEdits {
		if err := shield.Hand.SetString(e); err != nil {
			return err
		}
	}
	for _, e := range backEdits {
		if err := shield.Back.SetString(e); err != nil {
			return err
		}
	}
	switch strings.ToLower(*mode) {
	case "":
	case string(settings.Child):
		shield.Request(schedule.EquipChild)
	case string(settings.Adult):
		shield.Request(schedule.EquipAdult)
	default:
		return fmt.Errorf("unrecognised mode: %s", *mode)
	}
	if err := shield.Tick(); err != nil {
		return err
	}

	if err := listing(output, shield.Relocated(), img); err != nil {
		return err
	}
	for _, ptr := range patch.CodePointers {
		w, err := img.ReadWord(ptr)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "%s -> %s\n", address(fmt.Sprintf("%08x", ptr)), address(fmt.Sprintf("%08x", w)))
	}
	fmt.Fprintf(output, "%d writes, %d cache invalidations, mode %s\n", len(img.Journal.Entries), img.Invalidations(), shield.Mode())

	if journalFile != "" {
		if err := writeFile(journalFile, img.Journal.Encode); err != nil {
			return err
		}
		logger.Logf(logger.Allow, "journal", "written to %s", journalFile)
	}

	if *viz != "" {
		err := writeFile(*viz, func(w io.Writer) error {
			g := graph(shield)
			memviz.Map(w, &g)
			return nil
		})
		if err != nil {
			return err
		}
	}

	if *save {
		if err := settings.Save(*settingsFile, shield.Settings()); err != nil {
			return err
		}
		logger.Logf(logger.Allow, "settings", "saved to %s", *settingsFile)
	}

	return nil
}

// graphRegion is a region of the shield layout as it is shown by memviz.
type graphRegion struct {
	Name    string
	Offset  uint32
	Address uint32
	Size    uint32
	List    bool
}

// shieldGraph is the state of the shield patch in a form suitable for
// memviz. memory is not included.
type shieldGraph struct {
	Base     uint32
	Size     uint32
	Mode     settings.Mode
	Settings settings.Document
	Regions  []graphRegion
	Pending  []schedule.Request
}

func graph(s *patch.Shield) shieldGraph {
	g := shieldGraph{
		Size:     s.Size(),
		Mode:     s.Mode(),
		Settings: s.Settings(),
		Pending:  s.Pending(),
	}

	rel := s.Relocated()
	if rel != nil {
		g.Base = rel.Base()
	}

	for _, r := range s.Plan().Regions() {
		gr := graphRegion{
			Name:   r.Name,
			Offset: r.Address,
			Size:   r.Size,
			List:   r.IsList(),
		}
		if rel != nil {
			gr.Address, _ = rel.Address(r.Name)
		}
		g.Regions = append(g.Regions, gr)
	}

	return g
}

func writeFile(filename string, encode func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func matrix(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("Prints the fixed-point matrix for a transform. Parameters not named take\ntheir default value, eg.\n\n  MATRIX \"r_z::155; t_x::512; t_y::-335\"")

	back := md.AddBool("back", false, "start from the rescaled shield defaults rather than the hand defaults")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	def := transform.HandDefault
	if *back {
		def = transform.BackDefault
	}
	d := transform.NewDescriptor(def)
	if err := d.SetString(strings.Join(md.RemainingArgs(), ";")); err != nil {
		return err
	}

	v := d.Snapshot()
	fmt.Fprintln(output, v)

	m := v.Matrix()
	fx := m.Fixed()
	for i := range m {
		fmt.Fprintf(output, "  % 12.6f % 12.6f % 12.6f % 12.6f    %s\n",
			m[i][0], m[i][1], m[i][2], m[i][3],
			opcode(fmt.Sprintf("%08x %08x %08x %08x", uint32(fx[i][0]), uint32(fx[i][1]), uint32(fx[i][2]), uint32(fx[i][3]))))
	}

	b := v.Pack()
	for i := 0; i < len(b); i += 16 {
		fmt.Fprintf(output, "  %s\n", address(hex.EncodeToString(b[i:i+16])))
	}

	return nil
}
