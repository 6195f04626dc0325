package query_builder

import (
	"encoding/json"
	"log/slog"

	"github.com/graphbridge/graphql-mcp/internal/schema"
)

// CoerceVariables maps raw call-site argument values onto the operation's
// declared arguments. Clients sometimes send a JSON-encoded string where the
// declared type is an input object or a list; such strings are decoded
// best-effort. On decode failure the original string passes through unchanged
// and the upstream API gets to reject it; coercion is a convenience, not a
// validation gate.
//
// Values for names the operation does not declare are dropped.
func CoerceVariables(s *schema.Schema, args []schema.InputValue, values map[string]any) map[string]any {
	vars := make(map[string]any, len(args))
	for i := range args {
		arg := &args[i]
		value, ok := values[arg.Name]
		if !ok {
			continue
		}
		if str, isString := value.(string); isString && needsStructuredDecode(s, &arg.Type) {
			var decoded any
			if err := json.Unmarshal([]byte(str), &decoded); err != nil {
				slog.Debug("keeping raw string for structured argument",
					"argument", arg.Name, "type", schema.Render(&arg.Type), "error", err)
			} else {
				value = decoded
			}
		}
		vars[arg.Name] = value
	}
	return vars
}

// needsStructuredDecode reports whether a string value for this declared type
// should be attempted as structured data: input objects and list-like types.
func needsStructuredDecode(s *schema.Schema, ref *schema.TypeRef) bool {
	if schema.IsListLike(ref) {
		return true
	}
	return s.Definition(ref).Kind == schema.KindInputObject
}
