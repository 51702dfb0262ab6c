// internal/entity/entity.go
//
// Entity model shared by all character-guessing games.
//
// An Entity is one guessable record: a stable identifier, a display name
// (the primary comparison key), an optional image reference, and an open
// set of typed attribute values keyed by the game's field schema.
// Entities are loaded once per catalog and never mutated afterwards.

package entity

import (
	"fmt"
	"strings"
)

// NotAvailable is the sentinel rendered for absent or zero attribute values.
const NotAvailable = "N/A"

// Kind classifies an attribute for comparison and formatting.
type Kind string

const (
	KindText   Kind = "text"   // single text value
	KindTags   Kind = "tags"   // unordered tag list, compared as a set
	KindNumber Kind = "number" // orderable numeric value with direction hints
)

// Value is one typed attribute value. Exactly one of Text/Tags/Num is
// meaningful depending on Kind; Present reports whether the source record
// carried a usable value at all.
type Value struct {
	Kind    Kind
	Text    string
	Tags    []string
	Num     float64
	Present bool
}

// Entity is a single guessable record. Fields is keyed by FieldSpec.Key.
type Entity struct {
	ID     string
	Name   string
	Image  string
	Fields map[string]Value
}

// Formatter renders an attribute value for display.
type Formatter func(Value) string

// FieldSpec describes one comparable attribute of a game's entities.
type FieldSpec struct {
	Key          string
	Label        string
	Kind         Kind
	AllowPartial bool      // text only; categorical fields disable this
	Searchable   bool      // also matched by Catalog.Filter suggestions
	Format       Formatter // optional; Display falls back to a stock formatter
}

// Schema is the ordered list of comparable fields for one game.
type Schema []FieldSpec

// Field returns the spec for key, if declared.
func (s Schema) Field(key string) (FieldSpec, bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Display renders v according to spec, normalizing absent values to "N/A".
func Display(spec FieldSpec, v Value) string {
	if spec.Format != nil {
		return spec.Format(v)
	}
	if !v.Present {
		return NotAvailable
	}
	switch spec.Kind {
	case KindTags:
		if len(v.Tags) == 0 {
			return NotAvailable
		}
		return strings.Join(v.Tags, ", ")
	case KindNumber:
		return trimFloat(v.Num)
	default:
		if v.Text == "" {
			return NotAvailable
		}
		return v.Text
	}
}

// FormatYear renders a release year, or "N/A" for zero.
func FormatYear(v Value) string {
	if !v.Present || v.Num == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.0f", v.Num)
}

// FormatBounty renders a bounty in compact form: 1500000 → "1.5M",
// 30000 → "30K", zero/absent → "N/A".
func FormatBounty(v Value) string {
	if !v.Present || v.Num == 0 {
		return NotAvailable
	}
	switch {
	case v.Num >= 1_000_000:
		return trimFloat(v.Num/1_000_000) + "M"
	case v.Num >= 1_000:
		return trimFloat(v.Num/1_000) + "K"
	default:
		return trimFloat(v.Num)
	}
}

// FormatHeight renders a height stored in centimeters as meters: 174 → "1.74M".
func FormatHeight(v Value) string {
	if !v.Present || v.Num == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.2fM", v.Num/100)
}

// trimFloat renders n without a trailing ".0" for whole values
// and with one decimal otherwise.
func trimFloat(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%.1f", n)
}
