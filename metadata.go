package tsqlschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CascadeAction is the referential action of a foreign key
type CascadeAction int

const (
	NoAction CascadeAction = iota
	Cascade
	SetNull
	SetDefault
)

func (a CascadeAction) String() string {
	switch a {
	case Cascade:
		return "CASCADE"
	case SetNull:
		return "SET NULL"
	case SetDefault:
		return "SET DEFAULT"
	default:
		return "NO ACTION"
	}
}

func (a CascadeAction) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a CascadeAction) MarshalYAML() (any, error) {
	return a.String(), nil
}

// SizeKind tells which fields of SizeSpec are meaningful
type SizeKind int

const (
	// SizeLength is used by FLOAT and the character/binary string types
	SizeLength SizeKind = iota + 1
	// SizePrecisionScale is used by DECIMAL and NUMERIC
	SizePrecisionScale
)

// SizeMax is the Size recorded for (MAX)
const SizeMax = -1

// SizeSpec holds the sizing attributes of a data type
type SizeSpec struct {
	Kind      SizeKind `json:"-" yaml:"-"`
	Size      int      `json:"size,omitempty" yaml:"size,omitempty"`
	Precision int      `json:"precision,omitempty" yaml:"precision,omitempty"`
	Scale     int      `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// LengthSize returns a SizeSpec for sized types
func LengthSize(size int) *SizeSpec {
	return &SizeSpec{Kind: SizeLength, Size: size}
}

// PrecisionScale returns a SizeSpec for DECIMAL/NUMERIC
func PrecisionScale(precision, scale int) *SizeSpec {
	return &SizeSpec{Kind: SizePrecisionScale, Precision: precision, Scale: scale}
}

func (s *SizeSpec) String() string {
	switch {
	case s == nil:
		return ""
	case s.Kind == SizePrecisionScale:
		return fmt.Sprintf("(%d, %d)", s.Precision, s.Scale)
	case s.Size == SizeMax:
		return "(MAX)"
	default:
		return fmt.Sprintf("(%d)", s.Size)
	}
}

// Identity is the (seed, increment) pair of an identity column
type Identity struct {
	Seed      int64 `json:"seed" yaml:"seed"`
	Increment int64 `json:"increment" yaml:"increment"`
}

// PrimaryKey marks a primary key column
type PrimaryKey struct {
	Clustered bool `json:"clustered" yaml:"clustered"`
}

// ForeignKey is a single column foreign key
type ForeignKey struct {
	RefTable  string        `json:"refTable" yaml:"refTable"`
	RefColumn string        `json:"refColumn" yaml:"refColumn"`
	OnDelete  CascadeAction `json:"onDelete" yaml:"onDelete"`
	OnUpdate  CascadeAction `json:"onUpdate" yaml:"onUpdate"`
}

// MultiColumnForeignKey is a table level foreign key over more than one column
type MultiColumnForeignKey struct {
	Columns    []string      `json:"columns" yaml:"columns"`
	RefTable   string        `json:"refTable" yaml:"refTable"`
	RefColumns []string      `json:"refColumns" yaml:"refColumns"`
	OnDelete   CascadeAction `json:"onDelete" yaml:"onDelete"`
	OnUpdate   CascadeAction `json:"onUpdate" yaml:"onUpdate"`
}

// String renders the table-level constraint clause.
func (fk *MultiColumnForeignKey) String() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "FOREIGN KEY (%s) REFERENCES %s(%s)",
		strings.Join(fk.Columns, ", "), fk.RefTable, strings.Join(fk.RefColumns, ", "))
	writeActions(&builder, fk.OnDelete, fk.OnUpdate)

	return builder.String()
}

// ColumnMetadata describes one column. Everything except DataType is optional.
type ColumnMetadata struct {
	DataType     string      `json:"dataType" yaml:"dataType"`
	Size         *SizeSpec   `json:"size,omitempty" yaml:"size,omitempty"`
	Identity     *Identity   `json:"identity,omitempty" yaml:"identity,omitempty"`
	Nullable     *bool       `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	DefaultValue *string     `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	PrimaryKey   *PrimaryKey `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
	ForeignKey   *ForeignKey `json:"foreignKey,omitempty" yaml:"foreignKey,omitempty"`
}

// String renders the column definition without its name.
func (c *ColumnMetadata) String() string {
	var builder strings.Builder

	builder.WriteString(c.DataType)
	builder.WriteString(c.Size.String())

	if c.Identity != nil {
		fmt.Fprintf(&builder, " IDENTITY(%d, %d)", c.Identity.Seed, c.Identity.Increment)
	}

	if c.Nullable != nil {
		if *c.Nullable {
			builder.WriteString(" NULL")
		} else {
			builder.WriteString(" NOT NULL")
		}
	}

	if c.DefaultValue != nil {
		builder.WriteString(" DEFAULT ")
		builder.WriteString(*c.DefaultValue)
	}

	if c.PrimaryKey != nil {
		if c.PrimaryKey.Clustered {
			builder.WriteString(" PRIMARY KEY CLUSTERED")
		} else {
			builder.WriteString(" PRIMARY KEY NONCLUSTERED")
		}
	}

	if c.ForeignKey != nil {
		fmt.Fprintf(&builder, " REFERENCES %s(%s)", c.ForeignKey.RefTable, c.ForeignKey.RefColumn)
		writeActions(&builder, c.ForeignKey.OnDelete, c.ForeignKey.OnUpdate)
	}

	return builder.String()
}

func writeActions(builder *strings.Builder, onDelete, onUpdate CascadeAction) {
	if onDelete != NoAction {
		builder.WriteString(" ON DELETE ")
		builder.WriteString(onDelete.String())
	}

	if onUpdate != NoAction {
		builder.WriteString(" ON UPDATE ")
		builder.WriteString(onUpdate.String())
	}
}

// Columns is a column name to metadata mapping that keeps declaration order.
type Columns struct {
	order  []string
	byName map[string]*ColumnMetadata
}

// NewColumns creates an empty Columns
func NewColumns() *Columns {
	return &Columns{byName: make(map[string]*ColumnMetadata)}
}

// Set adds a column at the end, or replaces an existing one in place.
func (c *Columns) Set(name string, column *ColumnMetadata) {
	if _, exists := c.byName[name]; !exists {
		c.order = append(c.order, name)
	}

	c.byName[name] = column
}

// Get looks a column up by name
func (c *Columns) Get(name string) (*ColumnMetadata, bool) {
	column, ok := c.byName[name]
	return column, ok
}

// Names returns the column names in declaration order
func (c *Columns) Names() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of columns
func (c *Columns) Len() int {
	return len(c.order)
}

// All iterates the columns in declaration order
func (c *Columns) All() iter.Seq2[string, *ColumnMetadata] {
	return func(yield func(string, *ColumnMetadata) bool) {
		for _, name := range c.order {
			if !yield(name, c.byName[name]) {
				return
			}
		}
	}
}

// MarshalJSON writes the columns as an object in declaration order
func (c *Columns) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, name := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(c.byName[name])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal column %s: %w", name, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML writes the columns as a mapping in declaration order
func (c *Columns) MarshalYAML() (any, error) {
	result := make(yaml.MapSlice, 0, len(c.order))
	for name, column := range c.All() {
		result = append(result, yaml.MapItem{Key: name, Value: column})
	}

	return result, nil
}

// TableMetadata is the metadata extracted from one CREATE TABLE statement.
// It is not modified after the parser returns it.
type TableMetadata struct {
	Name             string                  `json:"name" yaml:"name"`
	Columns          *Columns                `json:"columns" yaml:"columns"`
	MultiForeignKeys []MultiColumnForeignKey `json:"multiForeignKeys,omitempty" yaml:"multiForeignKeys,omitempty"`
}

// NewTableMetadata creates an empty table. The name is normalized with NormalizeName.
func NewTableMetadata(name string) *TableMetadata {
	return &TableMetadata{
		Name:    NormalizeName(name),
		Columns: NewColumns(),
	}
}

// Equal reports whether both tables carry the same metadata
func (t *TableMetadata) Equal(other *TableMetadata) bool {
	return reflect.DeepEqual(t, other)
}

// String renders the table for diagnostic display
func (t *TableMetadata) String() string {
	var builder strings.Builder

	builder.WriteString("CREATE TABLE ")
	builder.WriteString(t.Name)
	builder.WriteString(" (")

	first := true
	separator := func() {
		if !first {
			builder.WriteString(", ")
		}

		first = false
	}

	for name, column := range t.Columns.All() {
		separator()
		builder.WriteString(name)
		builder.WriteByte(' ')
		builder.WriteString(column.String())
	}

	for _, fk := range t.MultiForeignKeys {
		separator()
		builder.WriteString(fk.String())
	}

	builder.WriteString(")")

	return builder.String()
}

// NormalizeName removes identifier delimiters and upper-cases the name,
// mirroring the case-insensitive default collation of SQL Server.
func NormalizeName(name string) string {
	// a Caser keeps state, so it is not shared
	return cases.Upper(language.Und).String(UnquoteIdentifier(name))
}

// UnquoteIdentifier removes [ ] and " " delimiters from every part of a
// possibly multi-part identifier, keeping the case as written.
func UnquoteIdentifier(name string) string {
	var (
		builder strings.Builder
		closer  rune
	)

	runes := []rune(name)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case closer != 0 && r == closer:
			if i+1 < len(runes) && runes[i+1] == closer {
				builder.WriteRune(r)
				i++
			} else {
				closer = 0
			}
		case closer != 0:
			builder.WriteRune(r)
		case r == '[':
			closer = ']'
		case r == '"':
			closer = '"'
		default:
			builder.WriteRune(r)
		}
	}

	return builder.String()
}
