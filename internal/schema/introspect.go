package schema

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// IntrospectionQuery is the standard full-schema introspection document sent
// once at startup. Depth of the ofType nesting follows the reference
// implementation from graphql-js (seven wrapper levels).
const IntrospectionQuery = `query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    types {
      ...FullType
    }
  }
}

fragment FullType on __Type {
  kind
  name
  description
  fields(includeDeprecated: true) {
    name
    description
    args {
      ...InputValue
    }
    type {
      ...TypeRef
    }
  }
  inputFields {
    ...InputValue
  }
  enumValues(includeDeprecated: true) {
    name
  }
}

fragment InputValue on __InputValue {
  name
  description
  type { ...TypeRef }
  defaultValue
}

fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
              }
            }
          }
        }
      }
    }
  }
}`

// Wire shapes for the introspection response. Kept private; the decoded
// result is exposed only through the Schema snapshot.
type introspectionData struct {
	Schema *introspectionSchema `json:"__schema"`
}

type introspectionSchema struct {
	QueryType    *introspectionRootRef `json:"queryType"`
	MutationType *introspectionRootRef `json:"mutationType"`
	Types        []introspectionType   `json:"types"`
}

type introspectionRootRef struct {
	Name string `json:"name"`
}

type introspectionType struct {
	Kind        string                    `json:"kind"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Fields      []introspectionField      `json:"fields"`
	InputFields []introspectionInputValue `json:"inputFields"`
	EnumValues  []introspectionEnumValue  `json:"enumValues"`
}

type introspectionField struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Args        []introspectionInputValue `json:"args"`
	Type        *TypeRef                  `json:"type"`
}

type introspectionInputValue struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Type         *TypeRef `json:"type"`
	DefaultValue *string  `json:"defaultValue"`
}

type introspectionEnumValue struct {
	Name string `json:"name"`
}

// DecodeIntrospection builds an immutable schema snapshot from the raw data
// payload of an introspection response. A payload without the top-level
// __schema envelope is a startup-fatal condition and returns an error.
func DecodeIntrospection(data []byte) (*Schema, error) {
	var decoded introspectionData
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode introspection response: %w", err)
	}
	if decoded.Schema == nil {
		return nil, fmt.Errorf("introspection response is missing the __schema envelope")
	}

	s := &Schema{Types: make(map[string]*TypeDef, len(decoded.Schema.Types))}
	if decoded.Schema.QueryType != nil {
		s.QueryTypeName = decoded.Schema.QueryType.Name
	}
	if decoded.Schema.MutationType != nil {
		s.MutationTypeName = decoded.Schema.MutationType.Name
	}

	for _, t := range decoded.Schema.Types {
		if t.Name == "" {
			slog.Debug("skipping unnamed type in introspection response", "kind", t.Kind)
			continue
		}
		// Introspection meta-types (__Schema, __Type, ...) are not
		// operations anyone can expose; keep them out of the snapshot.
		if strings.HasPrefix(t.Name, "__") {
			continue
		}
		s.Types[t.Name] = convertType(t)
	}

	if s.QueryTypeName != "" && s.Types[s.QueryTypeName] == nil {
		return nil, fmt.Errorf("introspection response names query type %q but does not define it", s.QueryTypeName)
	}

	slog.Debug("decoded schema snapshot",
		"types", len(s.Types),
		"query_type", s.QueryTypeName,
		"mutation_type", s.MutationTypeName)

	return s, nil
}

func convertType(t introspectionType) *TypeDef {
	def := &TypeDef{
		Kind:        normalizeKind(t.Kind),
		Name:        t.Name,
		Description: t.Description,
	}
	for _, f := range t.Fields {
		def.Fields = append(def.Fields, Field{
			Name:        f.Name,
			Description: f.Description,
			Args:        convertInputValues(f.Args),
			Type:        derefType(f.Type),
		})
	}
	def.InputFields = convertInputValues(t.InputFields)
	for _, ev := range t.EnumValues {
		def.EnumValues = append(def.EnumValues, ev.Name)
	}
	return def
}

func convertInputValues(values []introspectionInputValue) []InputValue {
	if len(values) == 0 {
		return nil
	}
	converted := make([]InputValue, 0, len(values))
	for _, v := range values {
		converted = append(converted, InputValue{
			Name:         v.Name,
			Description:  v.Description,
			Type:         derefType(v.Type),
			DefaultValue: v.DefaultValue,
		})
	}
	return converted
}

// derefType copies a wire type reference, substituting the UNKNOWN sentinel
// for absent data so downstream code never handles a zero reference.
func derefType(ref *TypeRef) TypeRef {
	if ref == nil {
		return *unknownRef
	}
	out := *ref
	out.Kind = normalizeKind(string(ref.Kind))
	return out
}

func normalizeKind(kind string) Kind {
	switch Kind(kind) {
	case KindScalar, KindObject, KindInterface, KindUnion, KindEnum, KindInputObject, KindList, KindNonNull:
		return Kind(kind)
	default:
		return KindUnknown
	}
}
