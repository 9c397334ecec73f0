// Package symtable implements the two-scope symbol table of the compiler:
// a class-global table (STATIC, FIELD) and a subroutine-local table (ARG,
// VAR), each with per-kind monotonic indices.
package symtable

import "github.com/jackc-toolchain/jackc/internal/vm"

// Kind classifies how a symbol is stored.
type Kind int

const (
	NONE Kind = iota
	STATIC
	FIELD
	ARG
	VAR
)

func (k Kind) String() string {
	switch k {
	case STATIC:
		return "static"
	case FIELD:
		return "field"
	case ARG:
		return "argument"
	case VAR:
		return "var"
	default:
		return "none"
	}
}

// SegmentFor maps a defined Kind to its VM segment. NONE has no segment.
func SegmentFor(k Kind) (vm.Segment, bool) {
	switch k {
	case VAR:
		return vm.Local, true
	case ARG:
		return vm.Argument, true
	case FIELD:
		return vm.This, true
	case STATIC:
		return vm.Static, true
	default:
		return "", false
	}
}

// NoIndex is returned by IndexOf for an undefined name.
const NoIndex = -1

// Entry is what a symbol table resolves a name to.
type Entry struct {
	Type  string
	Kind  Kind
	Index int
}

// Table is an insertion-ordered name -> Entry mapping with four independent
// monotonic per-kind counters. Counters begin at -1 so the first Define of a
// kind yields index 0; VarCount is always counter+1.
type Table struct {
	entries  map[string]Entry
	names    []string
	counters [VAR + 1]int // indexed by Kind; NONE's slot is unused
}

// New returns an empty table with all four counters at -1.
func New() *Table {
	t := &Table{entries: make(map[string]Entry)}
	for k := range t.counters {
		t.counters[k] = -1
	}
	return t
}

// Define assigns the next free index for kind and records name -> Entry.
// Last write wins if name is defined twice (not expected from a
// well-formed parse, but no duplicate check is required).
func (t *Table) Define(name, typ string, kind Kind) Entry {
	t.counters[kind]++
	entry := Entry{Type: typ, Kind: kind, Index: t.counters[kind]}
	if _, exists := t.entries[name]; !exists {
		t.names = append(t.names, name)
	}
	t.entries[name] = entry
	return entry
}

// VarCount returns the number of entries of the given kind.
func (t *Table) VarCount(kind Kind) int {
	return t.counters[kind] + 1
}

// Lookup returns the entry for name, if defined in this table.
func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// KindOf returns the kind of name, or NONE if undefined here.
func (t *Table) KindOf(name string) Kind {
	if e, ok := t.entries[name]; ok {
		return e.Kind
	}
	return NONE
}

// TypeOf returns the declared type of name, or ("", false) if undefined
// here — callers use the false case to mean "not a variable, treat name as
// a class name" when this is the outermost table consulted.
func (t *Table) TypeOf(name string) (string, bool) {
	e, ok := t.entries[name]
	if !ok {
		return "", false
	}
	return e.Type, true
}

// IndexOf returns the index of name, or NoIndex if undefined here.
func (t *Table) IndexOf(name string) int {
	if e, ok := t.entries[name]; ok {
		return e.Index
	}
	return NoIndex
}

// Names returns the defined names in declaration order.
func (t *Table) Names() []string {
	return t.names
}

// Resolve looks up name first in local, then in global, matching the
// engine's fixed resolution order. Callers never need to touch either
// table directly.
func Resolve(local, global *Table, name string) (Entry, bool) {
	if local != nil {
		if e, ok := local.Lookup(name); ok {
			return e, true
		}
	}
	if global != nil {
		if e, ok := global.Lookup(name); ok {
			return e, true
		}
	}
	return Entry{}, false
}
