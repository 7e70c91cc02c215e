package valueobjects

import (
	"strconv"
	"strings"
)

// Modifier is a Graph API field modifier such as summary(true) or limit(10).
type Modifier struct {
	Name string
	Arg  string
}

func (m Modifier) String() string {
	return m.Name + "(" + m.Arg + ")"
}

// Field is a single entry of a field selection. A field may carry modifiers
// and a nested sub-field list, rendered as name.mod(arg){sub,fields}.
type Field struct {
	Name      string
	Modifiers []Modifier
	Sub       []Field
}

// F creates a plain field.
func F(name string) Field {
	return Field{Name: name}
}

// With returns a copy of the field selecting the given nested fields.
func (f Field) With(sub ...Field) Field {
	out := f.clone()
	out.Sub = append(out.Sub, sub...)
	return out
}

// WithNames is With for plain nested field names.
func (f Field) WithNames(names ...string) Field {
	sub := make([]Field, 0, len(names))
	for _, n := range names {
		sub = append(sub, F(n))
	}
	return f.With(sub...)
}

// Modify returns a copy of the field with an extra modifier.
func (f Field) Modify(name, arg string) Field {
	out := f.clone()
	out.Modifiers = append(out.Modifiers, Modifier{Name: name, Arg: arg})
	return out
}

// Limit bounds a nested connection, e.g. messages.limit(10).
func (f Field) Limit(n int) Field {
	return f.Modify("limit", strconv.Itoa(n))
}

// Summary requests the summary block of a connection, e.g. likes.summary(true).
func (f Field) Summary() Field {
	return f.Modify("summary", "true")
}

// Type selects a variant of an edge, e.g. picture.type(large).
func (f Field) Type(t string) Field {
	return f.Modify("type", t)
}

func (f Field) String() string {
	var b strings.Builder
	f.write(&b)
	return b.String()
}

func (f Field) write(b *strings.Builder) {
	b.WriteString(f.Name)
	for _, m := range f.Modifiers {
		b.WriteByte('.')
		b.WriteString(m.String())
	}
	if len(f.Sub) > 0 {
		b.WriteByte('{')
		for i, s := range f.Sub {
			if i > 0 {
				b.WriteByte(',')
			}
			s.write(b)
		}
		b.WriteByte('}')
	}
}

func (f Field) clone() Field {
	out := Field{Name: f.Name}
	out.Modifiers = append([]Modifier(nil), f.Modifiers...)
	out.Sub = make([]Field, len(f.Sub))
	for i, s := range f.Sub {
		out.Sub[i] = s.clone()
	}
	if len(out.Sub) == 0 {
		out.Sub = nil
	}
	return out
}

// FieldSpec is an ordered, duplicate-free set of fields requested from the
// Graph API. The zero value is an empty spec.
type FieldSpec struct {
	fields []Field
}

// NewFieldSpec builds a spec from fields, keeping the first occurrence of a name.
func NewFieldSpec(fields ...Field) FieldSpec {
	spec := FieldSpec{}
	for _, f := range fields {
		spec = spec.Add(f)
	}
	return spec
}

// FieldSpecFromNames builds a spec from raw field expressions. The expressions
// are kept verbatim.
func FieldSpecFromNames(names ...string) FieldSpec {
	fields := make([]Field, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		fields = append(fields, F(n))
	}
	return NewFieldSpec(fields...)
}

// FieldSpecFromExpression wraps a caller supplied fields expression. The
// expression is rendered exactly as given, nested braces and repeats included.
func FieldSpecFromExpression(expr string) FieldSpec {
	if expr == "" {
		return FieldSpec{}
	}
	return FieldSpec{fields: []Field{F(expr)}}
}

// Add returns a new spec with f appended unless a field of the same name exists.
func (s FieldSpec) Add(f Field) FieldSpec {
	if s.Has(f.Name) {
		return s
	}
	out := make([]Field, len(s.fields), len(s.fields)+1)
	copy(out, s.fields)
	return FieldSpec{fields: append(out, f.clone())}
}

// Has reports whether a top-level field of that name is selected.
func (s FieldSpec) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Get returns the top-level field of that name.
func (s FieldSpec) Get(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f.clone(), true
		}
	}
	return Field{}, false
}

// Names returns the rendered expression of every field in order.
func (s FieldSpec) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.String()
	}
	return out
}

// Len returns the number of top-level fields.
func (s FieldSpec) Len() int {
	return len(s.fields)
}

// IsEmpty reports whether no fields are selected.
func (s FieldSpec) IsEmpty() bool {
	return len(s.fields) == 0
}

// String renders the spec as the value of the Graph API fields parameter.
func (s FieldSpec) String() string {
	return strings.Join(s.Names(), ",")
}
