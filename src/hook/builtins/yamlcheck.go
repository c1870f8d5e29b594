package builtins

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/sofmeright/hookwright/src/hook"
)

func init() {
	hook.Register(hook.Spec{
		ID:          "check-yaml",
		Name:        "Check YAML",
		Description: "Validates YAML syntax and flags duplicate mapping keys.",
		Types:       []string{"yaml"},
		New:         func() hook.Hook { return &yamlHook{} },
	})
}

type yamlHook struct {
	opts yamlOptions
}

type yamlOptions struct {
	AllowMultipleDocuments bool `mapstructure:"allow_multiple_documents"`
}

func (h *yamlHook) ID() string { return "check-yaml" }

func (h *yamlHook) Configure(opts map[string]any) error {
	h.opts = yamlOptions{}
	return mapstructure.Decode(opts, &h.opts)
}

func (h *yamlHook) Check(ctx context.Context, file hook.File) ([]hook.Finding, error) {
	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var findings []hook.Finding

	// Decode into yaml.Node: it surfaces syntax errors but tolerates
	// duplicate keys, which we report ourselves with positions.
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	docs := 0
	for {
		var node yaml.Node
		err := decoder.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			findings = append(findings, hook.Finding{
				File:    file.Path,
				Hook:    h.ID(),
				Message: fmt.Sprintf("YAML parse error: %v", err),
			})
			return findings, nil
		}
		docs++
		h.walkNode(&node, file.Path, &findings)
	}

	if docs > 1 && !h.opts.AllowMultipleDocuments {
		findings = append(findings, hook.Finding{
			File:    file.Path,
			Hook:    h.ID(),
			Message: fmt.Sprintf("%d documents in file (set allow_multiple_documents to permit)", docs),
		})
	}

	return findings, nil
}

func (h *yamlHook) walkNode(node *yaml.Node, filePath string, findings *[]hook.Finding) {
	if node == nil {
		return
	}

	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			h.walkNode(child, filePath, findings)
		}

	case yaml.MappingNode:
		seen := make(map[string]int) // key -> first line number
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			valNode := node.Content[i+1]
			key := keyNode.Value

			if firstLine, exists := seen[key]; exists {
				*findings = append(*findings, hook.Finding{
					File:    filePath,
					Line:    keyNode.Line,
					Column:  keyNode.Column,
					Hook:    h.ID(),
					Message: fmt.Sprintf("duplicate key %q (first defined at line %d)", key, firstLine),
				})
			} else {
				seen[key] = keyNode.Line
			}

			h.walkNode(valNode, filePath, findings)
		}
	}
}
