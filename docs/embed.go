package docs

import (
	_ "embed"
)

// UsageGuidancePrompt embeds the usage guidance for the generated tools.
// It is served as an MCP resource so clients can learn how the tool names
// map to GraphQL operations and how arguments are encoded before calling.
//
//go:embed prompts/usage_guidance.md
var UsageGuidancePrompt string
