package paintsync

import (
	"fmt"

	"go.uber.org/multierr"
)

// Kind classifies a rejected or repaired edit entry.
type Kind int

const (
	// InvalidIndex means the key is not a canonical decimal integer. The
	// entry is dropped.
	InvalidIndex Kind = iota
	// IndexOutOfRange means the index is outside the mesh. The entry is dropped.
	IndexOutOfRange
	// InvalidColor means the value is not a hex color. NeutralGray is used.
	InvalidColor
)

func (k Kind) String() string {
	switch k {
	case InvalidIndex:
		return "invalid index"
	case IndexOutOfRange:
		return "index out of range"
	case InvalidColor:
		return "invalid color"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Diagnostic describes one problem found while decoding an edit map.
type Diagnostic struct {
	Kind  Kind
	Key   string
	Value string
	Err   error
}

func (d *Diagnostic) Error() string {
	if d.Err != nil {
		return fmt.Sprintf("%s: %q -> %q: %v", d.Kind, d.Key, d.Value, d.Err)
	}
	return fmt.Sprintf("%s: %q -> %q", d.Kind, d.Key, d.Value)
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// Report collects decode diagnostics.
type Report struct {
	Diagnostics []*Diagnostic
}

func (r *Report) add(kind Kind, key, value string, err error) {
	r.Diagnostics = append(r.Diagnostics, &Diagnostic{Kind: kind, Key: key, Value: value, Err: err})
}

// OK reports whether decoding found no problems.
func (r Report) OK() bool {
	return len(r.Diagnostics) == 0
}

// Count returns how many diagnostics have the given kind.
func (r Report) Count(kind Kind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Err combines all diagnostics into one error, or nil.
func (r Report) Err() error {
	var err error
	for _, d := range r.Diagnostics {
		err = multierr.Append(err, d)
	}
	return err
}
