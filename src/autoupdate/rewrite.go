package autoupdate

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Apply rewrites rev pins in the config file. The edit happens on the
// YAML node tree rather than the decoded struct, so comments and key
// order in the document survive.
func Apply(path string, updates []Update) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	byRepo := make(map[string]Update, len(updates))
	for _, u := range updates {
		if u.Changed() {
			byRepo[u.Repo] = u
		}
	}
	if len(byRepo) == 0 {
		return nil
	}

	if err := rewriteRevs(&doc, byRepo); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc.Content[0]); err != nil {
		return fmt.Errorf("re-encoding %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// rewriteRevs finds each repos[] entry by its repo URL and replaces the
// rev scalar in place.
func rewriteRevs(doc *yaml.Node, byRepo map[string]Update) error {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return fmt.Errorf("unexpected document structure")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("top level is not a mapping")
	}

	repos := mappingValue(root, "repos")
	if repos == nil || repos.Kind != yaml.SequenceNode {
		return fmt.Errorf("no repos list in document")
	}

	for _, item := range repos.Content {
		if item.Kind != yaml.MappingNode {
			continue
		}
		repoNode := mappingValue(item, "repo")
		if repoNode == nil {
			continue
		}
		update, ok := byRepo[repoNode.Value]
		if !ok {
			continue
		}

		revNode := mappingValue(item, "rev")
		if revNode == nil {
			return fmt.Errorf("repo %s has no rev to update", update.Repo)
		}
		revNode.Value = update.NewRev
		// Pins that parsed as numbers (rev: 1.0) must re-encode as strings.
		revNode.Tag = "!!str"
	}

	return nil
}

// mappingValue returns the value node for a key in a mapping, or nil.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
