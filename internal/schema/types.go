package schema

import "strings"

// Kind identifies the introspection kind of a type reference or definition.
// LIST and NON_NULL are wrapper kinds: they never name a type themselves and
// always carry an OfType. Everything else is a named kind.
type Kind string

const (
	KindScalar      Kind = "SCALAR"
	KindObject      Kind = "OBJECT"
	KindInterface   Kind = "INTERFACE"
	KindUnion       Kind = "UNION"
	KindEnum        Kind = "ENUM"
	KindInputObject Kind = "INPUT_OBJECT"
	KindList        Kind = "LIST"
	KindNonNull     Kind = "NON_NULL"

	// KindUnknown is the sentinel for absent or unrecognized type data.
	// Introspection responses may omit type information for obscure
	// meta-fields, and that must not fail tool synthesis.
	KindUnknown Kind = "UNKNOWN"
)

// TypeRef is a reference to a type as it appears on a field, argument, or
// input field. Wrapper kinds nest through OfType; the chain is finite and
// terminates in a named type.
type TypeRef struct {
	Kind   Kind     `json:"kind"`
	Name   string   `json:"name,omitempty"`
	OfType *TypeRef `json:"ofType,omitempty"`
}

// TypeDef is the full definition of a named type from the schema snapshot.
// Fields is populated for OBJECT and INTERFACE kinds, InputFields for
// INPUT_OBJECT, and EnumValues for ENUM.
type TypeDef struct {
	Kind        Kind
	Name        string
	Description string
	Fields      []Field
	InputFields []InputValue
	EnumValues  []string
}

// Field is an output field of an object or interface type.
type Field struct {
	Name        string
	Description string
	Args        []InputValue
	Type        TypeRef
}

// InputValue is a field argument or an input object field.
type InputValue struct {
	Name        string
	Description string
	Type        TypeRef
	// DefaultValue is the GraphQL-literal default, nil when absent.
	DefaultValue *string
}

// Schema is an immutable snapshot of one introspection response. It is
// derived once at startup and only read afterwards.
type Schema struct {
	QueryTypeName    string
	MutationTypeName string
	Types            map[string]*TypeDef
}

// TypeByName returns the named type definition, or nil when the schema does
// not declare it.
func (s *Schema) TypeByName(name string) *TypeDef {
	return s.Types[name]
}

// Definition resolves a type reference to its named definition, stripping
// wrapper kinds first. It never returns nil: references to absent or unnamed
// types resolve to an UNKNOWN placeholder definition.
func (s *Schema) Definition(ref *TypeRef) *TypeDef {
	named := Unwrap(ref)
	if def := s.Types[named.Name]; def != nil {
		return def
	}
	return &TypeDef{Kind: KindUnknown, Name: named.Name}
}

// QueryType returns the schema's root query type, or nil when absent.
func (s *Schema) QueryType() *TypeDef {
	return s.Types[s.QueryTypeName]
}

// MutationType returns the schema's root mutation type, or nil when the
// schema declares no mutations.
func (s *Schema) MutationType() *TypeDef {
	return s.Types[s.MutationTypeName]
}

// OperationKind distinguishes the two executable root operation kinds.
type OperationKind string

const (
	OperationQuery    OperationKind = "query"
	OperationMutation OperationKind = "mutation"
)

func (k OperationKind) String() string {
	return string(k)
}

// Operation is a single exposable field, either directly under a root type or
// nested under object-typed container fields. Path holds the field names from
// the root down to the terminal field; Field is the terminal field and carries
// the arguments and return type. Created during the schema walk, read-only
// afterwards.
type Operation struct {
	Kind  OperationKind
	Path  []string
	Field Field
}

// PathKey returns the dotted form of the operation path, the key used in the
// persisted exposure document.
func (o Operation) PathKey() string {
	return strings.Join(o.Path, ".")
}
