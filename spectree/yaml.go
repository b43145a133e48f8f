// Copyright 2024 The gotham64/oav authors
// SPDX-License-Identifier: Apache-2.0

package spectree

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes raw YAML (or JSON, which is a YAML subset) text into a
// Node tree, preserving mapping key order the way yaml.Node naturally does.
// This is the format-agnostic entry point spec.md §6 calls for: "input and
// output are JSON (or YAML decoded to JSON trees)".
func ParseYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("spectree: parse yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return NewNull(), nil
	}
	return fromYAMLNode(doc.Content[0])
}

func fromYAMLNode(n *yaml.Node) (*Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return NewNull(), nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Put(key, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		elems := make([]*Node, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := fromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			elems = append(elems, val)
		}
		return NewArray(elems...), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	default:
		return NewNull(), nil
	}
}

func fromYAMLScalar(n *yaml.Node) (*Node, error) {
	switch n.Tag {
	case "!!null":
		return NewNull(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, err
		}
		return NewBool(b), nil
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, err
		}
		return NewNumber(f), nil
	default:
		return NewString(n.Value), nil
	}
}
