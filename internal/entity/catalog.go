// internal/entity/catalog.go
//
// Catalog loads and indexes one game's entity dataset.
//
// Datasets are JSON arrays of flat records. Because every game declares its
// own attribute schema, records are not decoded into fixed structs: each
// declared field is extracted by key with gjson, tolerating missing keys and
// heterogeneous value shapes. Records without a display name are dropped.
//
// A Catalog is immutable after Load; lookups and filtering never mutate it.

package entity

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

var ErrEmptyDataset = errors.New("entity: dataset contains no usable records")

// Catalog is the in-memory entity set for one game.
type Catalog struct {
	schema   Schema
	entities []*Entity
	byName   map[string]*Entity // lowercased display name
}

// Load parses a JSON array of entity records against schema.
func Load(data []byte, schema Schema) (*Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("entity: dataset is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, errors.New("entity: dataset is not a JSON array")
	}

	c := &Catalog{schema: schema, byName: make(map[string]*Entity)}
	for _, rec := range root.Array() {
		name := strings.TrimSpace(rec.Get("name").String())
		if name == "" {
			continue // records without a display name are unusable
		}
		e := &Entity{
			ID:     rec.Get("id").String(),
			Name:   name,
			Image:  rec.Get("image").String(),
			Fields: make(map[string]Value, len(schema)),
		}
		for _, f := range schema {
			e.Fields[f.Key] = extract(f, rec.Get(f.Key))
		}
		c.entities = append(c.entities, e)
		c.byName[strings.ToLower(name)] = e
	}
	if len(c.entities) == 0 {
		return nil, ErrEmptyDataset
	}
	return c, nil
}

// LoadFile reads and parses a dataset file.
func LoadFile(path string, schema Schema) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data, schema)
}

// extract converts one raw JSON value into a typed attribute value.
func extract(f FieldSpec, r gjson.Result) Value {
	v := Value{Kind: f.Kind}
	if !r.Exists() {
		return v
	}
	switch f.Kind {
	case KindTags:
		for _, el := range r.Array() {
			if s := strings.TrimSpace(el.String()); s != "" {
				v.Tags = append(v.Tags, s)
			}
		}
		v.Present = len(v.Tags) > 0
	case KindNumber:
		v.Num = r.Float()
		v.Present = v.Num != 0
	default:
		v.Text = strings.TrimSpace(r.String())
		v.Present = v.Text != ""
	}
	return v
}

// Len reports the number of loaded entities.
func (c *Catalog) Len() int { return len(c.entities) }

// At returns the entity at index i (insertion order).
func (c *Catalog) At(i int) *Entity { return c.entities[i] }

// Schema returns the field schema the catalog was loaded with.
func (c *Catalog) Schema() Schema { return c.schema }

// FindExact resolves a trimmed, case-insensitive exact display name.
func (c *Catalog) FindExact(name string) *Entity {
	return c.byName[strings.ToLower(strings.TrimSpace(name))]
}

// Filter returns suggestions for a typed query: entities whose name (or a
// Searchable text field) contains the query case-insensitively, excluding
// names already guessed. Results are ordered alphabetically by display name,
// ignoring case. An empty query yields no suggestions.
func (c *Catalog) Filter(query string, excluded []string) []*Entity {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	skip := make(map[string]struct{}, len(excluded))
	for _, n := range excluded {
		skip[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}

	var out []*Entity
	for _, e := range c.entities {
		if _, guessed := skip[strings.ToLower(e.Name)]; guessed {
			continue
		}
		if c.matches(e, q) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// matches reports whether e's name or any searchable text field contains q.
func (c *Catalog) matches(e *Entity, q string) bool {
	if strings.Contains(strings.ToLower(e.Name), q) {
		return true
	}
	for _, f := range c.schema {
		if !f.Searchable || f.Kind != KindText {
			continue
		}
		if v := e.Fields[f.Key]; v.Present && strings.Contains(strings.ToLower(v.Text), q) {
			return true
		}
	}
	return false
}

// Random returns a uniformly chosen entity using crypto/rand. If the
// entropy read fails the first entity is returned rather than panicking.
func (c *Catalog) Random() *Entity {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(c.entities))))
	if err != nil {
		return c.entities[0]
	}
	return c.entities[n.Int64()]
}

// ByRef resolves an entity by stored id and name, used when restoring a
// persisted target reference written by an older progress format.
func (c *Catalog) ByRef(id, name string) *Entity {
	e := c.FindExact(name)
	if e != nil && e.ID == id {
		return e
	}
	return nil
}
