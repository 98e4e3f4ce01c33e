package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/coregx/rxselect"
	"github.com/coregx/rxselect/engine"
)

type replaceOutput struct {
	Selection rxselect.Selection[*engine.Capture] `json:"selection"`
	Subject   string                              `json:"subject"`
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		node, err := yamlNode(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

// yamlNode converts selection output to a node tree so mappings keep the
// order the engine produced.
func yamlNode(v any) (*yaml.Node, error) {
	switch v := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}, nil
	case string:
		n := &yaml.Node{}
		n.SetString(v)
		return n, nil
	case *engine.Capture:
		if v == nil {
			return yamlNode(nil)
		}
		return yamlNode(v.Text)
	case []*engine.Capture:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, c := range v {
			n, err := yamlNode(c)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	case *engine.Result[*engine.Capture]:
		return resultNode(v)
	case *engine.Result[[]*engine.Capture]:
		return resultNode(v)
	case rxselect.Selection[*engine.Capture]:
		return yamlNode(v.Interface())
	case rxselect.Selection[[]*engine.Capture]:
		return yamlNode(v.Interface())
	case replaceOutput:
		sel, err := yamlNode(v.Selection)
		if err != nil {
			return nil, err
		}
		subject, _ := yamlNode(v.Subject)
		key := func(s string) *yaml.Node {
			n, _ := yamlNode(s)
			return n
		}
		return &yaml.Node{
			Kind:    yaml.MappingNode,
			Tag:     "!!map",
			Content: []*yaml.Node{key("selection"), sel, key("subject"), subject},
		}, nil
	}
	return nil, fmt.Errorf("cannot render %T", v)
}

func resultNode[V any](r *engine.Result[V]) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range r.All() {
		var kn *yaml.Node
		if k.IsName() {
			kn, _ = yamlNode(k.Name())
		} else {
			kn, _ = yamlNode(k.Index())
		}
		vn, err := yamlNode(v)
		if err != nil {
			return nil, err
		}
		m.Content = append(m.Content, kn, vn)
	}
	return m, nil
}
