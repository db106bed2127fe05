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

package rdram

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/jetsetilly/nhshield/curated"
)

// JournalError is returned when a journal cannot be encoded, decoded or
// replayed.
const JournalError = "rdram: journal: %v"

// Op is the type of a journal Entry.
type Op uint8

// List of valid Op values.
const (
	OpBytes Op = iota
	OpWord
	OpInvalidate
)

func (op Op) String() string {
	switch op {
	case OpBytes:
		return "bytes"
	case OpWord:
		return "word"
	case OpInvalidate:
		return "invalidate"
	}
	return "unknown"
}

// Entry is a single change to memory.
type Entry struct {
	Op      Op     `cbor:"1,keyasint"`
	Address uint32 `cbor:"2,keyasint,omitempty"`
	Data    []byte `cbor:"3,keyasint,omitempty"`
	Value   uint32 `cbor:"4,keyasint,omitempty"`
}

func (e Entry) String() string {
	switch e.Op {
	case OpBytes:
		return fmt.Sprintf("%s %08x [%d bytes]", e.Op, e.Address, len(e.Data))
	case OpWord:
		return fmt.Sprintf("%s %08x = %08x", e.Op, e.Address, e.Value)
	}
	return e.Op.String()
}

// Journal is the ordered list of changes made to a Target.
type Journal struct {
	Entries []Entry `cbor:"1,keyasint"`
}

func (j *Journal) addBytes(address uint32, data []byte) {
	c := make([]byte, len(data))
	copy(c, data)
	j.Entries = append(j.Entries, Entry{Op: OpBytes, Address: address, Data: c})
}

func (j *Journal) addWord(address uint32, value uint32) {
	j.Entries = append(j.Entries, Entry{Op: OpWord, Address: address, Value: value})
}

func (j *Journal) addInvalidate() {
	j.Entries = append(j.Entries, Entry{Op: OpInvalidate})
}

// Clear removes all entries from the journal.
func (j *Journal) Clear() {
	j.Entries = j.Entries[:0]
}

// Replay applies every entry in the journal to the Target, in order.
func (j *Journal) Replay(t Target) error {
	for _, e := range j.Entries {
		var err error
		switch e.Op {
		case OpBytes:
			err = t.WriteBytes(e.Address, e.Data)
		case OpWord:
			err = t.WriteWord(e.Address, e.Value)
		case OpInvalidate:
			t.InvalidateInstructionCache()
		default:
			err = curated.Errorf(JournalError, fmt.Sprintf("unknown op (%d)", e.Op))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// journal encoding is canonical so that identical patch sequences produce
// identical files
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// Encode writes the journal to w as CBOR.
func (j *Journal) Encode(w io.Writer) error {
	b, err := encMode.Marshal(j)
	if err != nil {
		return curated.Errorf(JournalError, err)
	}
	if _, err := w.Write(b); err != nil {
		return curated.Errorf(JournalError, err)
	}
	return nil
}

// DecodeJournal reads a journal written by Encode().
func DecodeJournal(r io.Reader) (*Journal, error) {
	var j Journal
	if err := cbor.NewDecoder(r).Decode(&j); err != nil {
		return nil, curated.Errorf(JournalError, err)
	}
	return &j, nil
}
