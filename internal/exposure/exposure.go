// Package exposure owns the persisted allow-list controlling which discovered
// operations are materialized as tools. The document is read once at startup,
// reconciled against the live schema, and written back only when the
// reconciliation changed it.
package exposure

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Entries maps an operation path (dotted for nested container addressing) to
// its exposure value. Values are kept as raw YAML scalars: only an exact
// boolean true enables a tool, but foreign values must survive a round trip
// untouched rather than fail the load.
type Entries map[string]any

// Categories groups entries by operation category.
type Categories struct {
	Queries   Entries `yaml:"queries"`
	Mutations Entries `yaml:"mutations"`
	Resources Entries `yaml:"resources,omitempty"`
}

// Document is the persisted exposure configuration.
type Document struct {
	Exposed Categories `yaml:"exposed"`
}

// Load reads the exposure document from path. A missing file is not an
// error: startup synthesizes an empty document and reconciliation fills it
// in. A present but unparseable file is an error and aborts startup, since
// the document is the contract for what capabilities are exposed.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("exposure configuration absent, starting empty", "path", path)
			return emptyDocument(), nil
		}
		return nil, fmt.Errorf("failed to read exposure configuration %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse exposure configuration %s: %w", path, err)
	}
	ensureMaps(&doc)
	return &doc, nil
}

// Save writes the document back to path. Callers treat a write failure as
// fatal: silently exposing a tool set that differs from the persisted
// contract is unacceptable.
func Save(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal exposure configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write exposure configuration %s: %w", path, err)
	}
	slog.Info("persisted exposure configuration", "path", path)
	return nil
}

// Reconcile syncs one category's entries with the operations currently
// present in the live schema. Discovered operations missing from the entries
// are inserted enabled-by-default; entries whose key no longer corresponds to
// a discovered operation are pruned. resolve, when non-nil, reports whether a
// key outside the discovered set (a dotted nested path) still addresses a
// live operation and should be kept.
//
// Reconcile is pure: it returns a fresh map and a dirty flag, leaving the
// input untouched. Running it twice against an unchanged schema yields no
// dirty state.
func Reconcile(discovered []string, entries Entries, resolve func(key string) bool) (Entries, bool) {
	discoveredSet := make(map[string]struct{}, len(discovered))
	for _, key := range discovered {
		discoveredSet[key] = struct{}{}
	}

	out := make(Entries, len(entries)+len(discovered))
	dirty := false

	for key, value := range entries {
		if _, ok := discoveredSet[key]; ok {
			out[key] = value
			continue
		}
		if resolve != nil && resolve(key) {
			out[key] = value
			continue
		}
		slog.Info("pruning exposure entry for vanished operation", "operation", key)
		dirty = true
	}

	for _, key := range discovered {
		if _, ok := out[key]; !ok {
			slog.Info("exposing newly discovered operation", "operation", key)
			out[key] = true
			dirty = true
		}
	}

	return out, dirty
}

// Enabled reports whether an entry materializes a tool: the persisted value
// must be exactly boolean true. Missing, false, or non-boolean values skip
// materialization without error.
func Enabled(entries Entries, key string) bool {
	value, ok := entries[key]
	if !ok {
		return false
	}
	enabled, isBool := value.(bool)
	return isBool && enabled
}

// EnabledKeys lists the keys enabled in a category, sorted for deterministic
// registration order.
func EnabledKeys(entries Entries) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		if Enabled(entries, key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func emptyDocument() *Document {
	doc := &Document{}
	ensureMaps(doc)
	return doc
}

func ensureMaps(doc *Document) {
	if doc.Exposed.Queries == nil {
		doc.Exposed.Queries = make(Entries)
	}
	if doc.Exposed.Mutations == nil {
		doc.Exposed.Mutations = make(Entries)
	}
}
