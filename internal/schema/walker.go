package schema

import (
	"fmt"
	"log/slog"
	"strings"
)

// rootType returns the root type definition for an operation kind, or nil
// when the schema does not declare one (a schema without mutations is
// common and not an error).
func rootType(s *Schema, kind OperationKind) *TypeDef {
	switch kind {
	case OperationMutation:
		return s.MutationType()
	default:
		return s.QueryType()
	}
}

// DiscoverOperations lists every field directly under the root type of the
// given kind as an operation. Nested container fields are not enumerated
// here; they become operations only when an exposure entry addresses them by
// dotted path.
func DiscoverOperations(s *Schema, kind OperationKind) []Operation {
	root := rootType(s, kind)
	if root == nil {
		return nil
	}
	ops := make([]Operation, 0, len(root.Fields))
	for _, f := range root.Fields {
		ops = append(ops, Operation{
			Kind:  kind,
			Path:  []string{f.Name},
			Field: f,
		})
	}
	return ops
}

// OperationKeys returns the dotted path keys of the given operations, in
// discovery order.
func OperationKeys(ops []Operation) []string {
	keys := make([]string, 0, len(ops))
	for _, op := range ops {
		keys = append(keys, op.PathKey())
	}
	return keys
}

// ResolveOperation walks a dot-separated field path from the root type of the
// given kind, level by level. Every non-terminal segment must resolve to a
// field whose unwrapped type is an object type; the terminal segment may be
// any field. Any failure at any level yields an "operation not found" error
// so a single stale exposure entry never aborts processing of the rest.
//
// Arguments declared on non-terminal segments are ignored: container fields
// are traversed as if argument-less, and only the terminal field's arguments
// become part of the operation.
func ResolveOperation(s *Schema, kind OperationKind, path string) (*Operation, error) {
	segments := strings.Split(path, ".")
	current := rootType(s, kind)
	if current == nil {
		return nil, fmt.Errorf("%s operation %q not found: schema has no %s root type", kind, path, kind)
	}

	var terminal *Field
	for i, segment := range segments {
		field := fieldByName(current, segment)
		if field == nil {
			return nil, fmt.Errorf("%s operation %q not found: type %q has no field %q", kind, path, current.Name, segment)
		}
		if i == len(segments)-1 {
			terminal = field
			break
		}
		next := s.Definition(&field.Type)
		if next.Kind != KindObject {
			return nil, fmt.Errorf("%s operation %q not found: intermediate field %q is %s, not an object type",
				kind, path, segment, next.Kind)
		}
		current = next
	}

	slog.Debug("resolved operation path", "kind", kind, "path", path, "return_type", Render(&terminal.Type))

	return &Operation{
		Kind:  kind,
		Path:  segments,
		Field: *terminal,
	}, nil
}

func fieldByName(def *TypeDef, name string) *Field {
	for i := range def.Fields {
		if def.Fields[i].Name == name {
			return &def.Fields[i]
		}
	}
	return nil
}
