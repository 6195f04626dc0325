package schema

import (
	"fmt"
	"strings"
)

// unknownRef is the sentinel returned when a type reference is absent.
var unknownRef = &TypeRef{Kind: KindUnknown, Name: "Unknown"}

// Unwrap strips all NON_NULL and LIST wrappers and returns the innermost
// named type reference. A nil or truncated reference yields the UNKNOWN
// sentinel rather than failing.
func Unwrap(ref *TypeRef) *TypeRef {
	for ref != nil {
		if ref.Kind != KindNonNull && ref.Kind != KindList {
			return ref
		}
		ref = ref.OfType
	}
	return unknownRef
}

// IsListLike reports whether the reference is a list after stripping at most
// one outer NON_NULL wrapper. Inner list nullability does not matter here;
// the caller only needs to know whether values travel as arrays.
func IsListLike(ref *TypeRef) bool {
	if ref == nil {
		return false
	}
	if ref.Kind == KindNonNull {
		ref = ref.OfType
	}
	return ref != nil && ref.Kind == KindList
}

// IsRequired reports whether the outermost wrapper is NON_NULL, i.e. a value
// must be supplied by the caller.
func IsRequired(ref *TypeRef) bool {
	return ref != nil && ref.Kind == KindNonNull
}

// Render reproduces the GraphQL wrapper syntax for a type reference, e.g.
// "[Widget!]!". It recurses through LIST before appending the NON_NULL
// marker, exactly inverting the wrapper nesting so that re-parsing the
// rendered string yields an equivalent reference.
func Render(ref *TypeRef) string {
	if ref == nil {
		return unknownRef.Name
	}
	switch ref.Kind {
	case KindNonNull:
		return Render(ref.OfType) + "!"
	case KindList:
		return "[" + Render(ref.OfType) + "]"
	default:
		if ref.Name == "" {
			return unknownRef.Name
		}
		return ref.Name
	}
}

// ParseTypeRef parses GraphQL type syntax ("[Widget!]!") back into a
// reference. It is the inverse of Render and exists so the rendered form can
// be verified to round-trip.
func ParseTypeRef(s string) (*TypeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty type syntax")
	}
	if strings.HasSuffix(s, "!") {
		inner, err := ParseTypeRef(s[:len(s)-1])
		if err != nil {
			return nil, err
		}
		return &TypeRef{Kind: KindNonNull, OfType: inner}, nil
	}
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return nil, fmt.Errorf("unbalanced list brackets in %q", s)
		}
		inner, err := ParseTypeRef(s[1 : len(s)-1])
		if err != nil {
			return nil, err
		}
		return &TypeRef{Kind: KindList, OfType: inner}, nil
	}
	if strings.ContainsAny(s, "[]!") {
		return nil, fmt.Errorf("malformed type syntax %q", s)
	}
	// The name alone does not identify the named kind; callers resolve it
	// against the schema snapshot when they need the definition.
	return &TypeRef{Kind: KindUnknown, Name: s}, nil
}
