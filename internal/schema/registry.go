// Package schema holds the field tables of every notification structure kind.
// Tables are built once at package initialisation and never mutated, so they
// can be read concurrently without locking.
package schema

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/sumire/notifyschema/internal/domain"
)

// Kind names a structure kind.
type Kind string

const (
	KindNotificationAndroidOptions Kind = "notification-android-options"
	KindAction                     Kind = "action"
	KindRemoteInput                Kind = "remote-input"
	KindPressAction                Kind = "press-action"
	KindStyle                      Kind = "style"
	KindBigPictureStyle            Kind = "big-picture-style"
	KindBigTextStyle               Kind = "big-text-style"
	KindProgress                   Kind = "progress"
	KindChannel                    Kind = "channel"
	KindChannelGroup               Kind = "channel-group"
)

// SemanticType is the runtime shape a field value must have.
type SemanticType int

const (
	TypeString SemanticType = iota + 1
	TypeBool
	TypeInteger
	TypeEnum
	TypeColor
	TypeSmallIcon
	TypeLights
	TypeObject
	TypeObjectList
	TypeIntegerList
	TypeStringList
	TypeAny
)

var typeNames = map[SemanticType]string{
	TypeString:      "string",
	TypeBool:        "boolean",
	TypeInteger:     "integer",
	TypeEnum:        "enum",
	TypeColor:       "color",
	TypeSmallIcon:   "smallIcon",
	TypeLights:      "lights",
	TypeObject:      "object",
	TypeObjectList:  "object[]",
	TypeIntegerList: "integer[]",
	TypeStringList:  "string[]",
	TypeAny:         "any",
}

func (t SemanticType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SemanticType(%d)", int(t))
}

func (t SemanticType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Field describes one field of a structure kind.
type Field struct {
	Name      string       `json:"name"`
	Required  bool         `json:"required"`
	Type      SemanticType `json:"type"`
	Enum      *Enum        `json:"enum,omitempty"`
	Kind      Kind         `json:"kind,omitempty"`
	Default   any          `json:"default,omitempty"`
	Immutable bool         `json:"immutable,omitempty"`
}

// FieldTable is the schema of one structure kind.
type FieldTable struct {
	kind          Kind
	fields        []Field
	index         map[string]int
	discriminator string
	variants      map[int64]Kind
}

func newTable(kind Kind, fields ...Field) *FieldTable {
	t := &FieldTable{
		kind:   kind,
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		t.index[f.Name] = i
	}
	return t
}

func newUnion(kind Kind, discriminator Field, variants map[int64]Kind) *FieldTable {
	t := newTable(kind, discriminator)
	t.discriminator = discriminator.Name
	t.variants = variants
	return t
}

// Kind returns the structure kind the table describes.
func (t *FieldTable) Kind() Kind { return t.kind }

// Fields returns a copy of the field list in declaration order.
func (t *FieldTable) Fields() []Field { return slices.Clone(t.fields) }

// Lookup finds a field by name.
func (t *FieldTable) Lookup(name string) (Field, bool) {
	i, ok := t.index[name]
	if !ok {
		return Field{}, false
	}
	return t.fields[i], true
}

// IsUnion reports whether the table is a tagged union dispatching on Discriminator.
func (t *FieldTable) IsUnion() bool { return t.discriminator != "" }

// Discriminator is the tag field of a union table.
func (t *FieldTable) Discriminator() string { return t.discriminator }

// Variant resolves a discriminant value to the variant kind.
func (t *FieldTable) Variant(tag int64) (Kind, bool) {
	k, ok := t.variants[tag]
	return k, ok
}

// Immutable lists the fields that cannot change after creation.
func (t *FieldTable) Immutable() []string {
	var names []string
	for _, f := range t.fields {
		if f.Immutable {
			names = append(names, f.Name)
		}
	}
	return names
}

func (t *FieldTable) MarshalJSON() ([]byte, error) {
	type variant struct {
		Tag  int64 `json:"tag"`
		Kind Kind  `json:"kind"`
	}
	out := struct {
		Kind          Kind      `json:"kind"`
		Fields        []Field   `json:"fields"`
		Discriminator string    `json:"discriminator,omitempty"`
		Variants      []variant `json:"variants,omitempty"`
	}{
		Kind:          t.kind,
		Fields:        t.fields,
		Discriminator: t.discriminator,
	}
	for tag, k := range t.variants {
		out.Variants = append(out.Variants, variant{Tag: tag, Kind: k})
	}
	sort.Slice(out.Variants, func(i, j int) bool { return out.Variants[i].Tag < out.Variants[j].Tag })
	return json.Marshal(out)
}

// Registry maps structure kinds to their field tables.
type Registry struct {
	tables map[Kind]*FieldTable
}

// NewRegistry creates a Registry from the given tables.
func NewRegistry(tables ...*FieldTable) *Registry {
	r := &Registry{tables: make(map[Kind]*FieldTable, len(tables))}
	for _, t := range tables {
		r.tables[t.kind] = t
	}
	return r
}

var defaultRegistry = NewRegistry(androidTables()...)

// Default returns the process-wide registry of Android notification structures.
func Default() *Registry { return defaultRegistry }

// Describe returns the field table of kind.
func (r *Registry) Describe(kind Kind) (*FieldTable, error) {
	t, ok := r.tables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return t, nil
}

// Kinds lists the registered kinds in lexical order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.tables))
	for k := range r.tables {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Describe looks kind up in the default registry.
func Describe(kind Kind) (*FieldTable, error) {
	return defaultRegistry.Describe(kind)
}
