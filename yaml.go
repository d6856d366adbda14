package tagpack

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// f64BitsTag marks a float written as its raw bit pattern. It is used for
// NaNs, whose payload would otherwise be lost in text form.
const f64BitsTag = "!f64"

// MarshalYAML renders the container as a YAML sequence. Integers are
// tagged !!int, floats !!float, printable strings !!str, other byte
// strings !!binary and nested sequences !!seq, so that UnmarshalYAML
// reproduces the container exactly.
func (c *Container) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range c.Values {
		node.Content = append(node.Content, valueNode(v))
	}
	return node, nil
}

// UnmarshalYAML loads a container from a YAML sequence in the form
// MarshalYAML produces. Untagged scalars resolve the usual YAML way:
// plain integers become uint64 values and plain decimals floats.
func (c *Container) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: container must be a sequence", node.Line)
	}

	values := make([]Value, 0, len(node.Content))
	for _, child := range node.Content {
		v, err := nodeValue(child)
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	c.Values = values
	return nil
}

func valueNode(v Value) *yaml.Node {
	switch tv := deref(v).(type) {
	case IntegerValue:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(tv.Value, 10)}
	case FloatValue:
		return floatNode(tv.Value)
	case StringValue:
		if isPrintable(tv.Bytes) {
			node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(tv.Bytes)}
			// Block scalars lose line breaks when the string is nothing but
			// line breaks; quoted scalars escape them
			if bytes.IndexByte(tv.Bytes, '\n') >= 0 {
				node.Style = yaml.DoubleQuotedStyle
			}
			return node
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!binary", Value: base64.StdEncoding.EncodeToString(tv.Bytes)}
	case SequenceValue:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(tv.Values) == 0 {
			node.Style = yaml.FlowStyle
		}
		for _, child := range tv.Values {
			node.Content = append(node.Content, valueNode(child))
		}
		return node
	default:
		panic(fmt.Sprintf("tagpack: unknown value type %T", v))
	}
}

func floatNode(f float64) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float"}
	switch {
	case math.IsNaN(f):
		node.Tag = f64BitsTag
		node.Value = fmt.Sprintf("0x%016x", math.Float64bits(f))
	case math.IsInf(f, 1):
		node.Value = ".inf"
	case math.IsInf(f, -1):
		node.Value = "-.inf"
	default:
		node.Value = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return node
}

// isPrintable reports whether b can be written as a plain YAML string and
// read back unchanged.
func isPrintable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if r != '\n' && r != '\t' && !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func nodeValue(node *yaml.Node) (Value, error) {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.SequenceNode:
		s := &SequenceValue{Values: make([]Value, 0, len(node.Content))}
		for _, child := range node.Content {
			v, err := nodeValue(child)
			if err != nil {
				return nil, err
			}
			s.Values = append(s.Values, v)
		}
		return s, nil
	case yaml.ScalarNode:
		return scalarValue(node)
	default:
		return nil, fmt.Errorf("line %d: cannot convert YAML node kind %d to a value", node.Line, node.Kind)
	}
}

func scalarValue(node *yaml.Node) (Value, error) {
	switch tag := node.ShortTag(); tag {
	case "!!int":
		v, err := strconv.ParseUint(node.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid uint64 %q: %w", node.Line, node.Value, err)
		}
		return Integer(v), nil
	case "!!float":
		f, err := parseFloat(node.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid float64 %q: %w", node.Line, node.Value, err)
		}
		return Float(f), nil
	case f64BitsTag:
		bits, err := strconv.ParseUint(node.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid float64 bits %q: %w", node.Line, node.Value, err)
		}
		return Float(math.Float64frombits(bits)), nil
	case "!!str":
		return Text(node.Value), nil
	case "!!binary":
		// Long base64 scalars may be folded across lines
		clean := strings.Join(strings.Fields(node.Value), "")
		b, err := base64.StdEncoding.DecodeString(clean)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid base64: %w", node.Line, err)
		}
		return StringValue{Bytes: b}, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML tag %s", node.Line, tag)
	}
}

// parseFloat accepts the YAML spellings of infinities and NaN on top of
// what strconv does.
func parseFloat(s string) (float64, error) {
	switch s {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), nil
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), nil
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	// A whole document wraps its single root node
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		return resolveAlias(node.Content[0])
	}
	return node
}
