package parser

import (
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/refract/internal/errors"
	"github.com/mcncl/refract/internal/models"
)

// jsonNumber matches literals that are valid JSON numbers exactly as written.
var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// ParseYAML converts a YAML document from an io.Reader into a value tree.
// The stream must hold exactly one document.
func ParseYAML(reader io.Reader) (models.Value, error) {
	dec := yaml.NewDecoder(reader)

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewInputError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, errors.NewParsingError(fmt.Sprintf("invalid YAML: %v", err), errors.ErrInvalidYAML)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return nil, errors.NewParsingError("multiple YAML documents found", errors.ErrMultipleDocs)
	} else if !stderrors.Is(err, io.EOF) {
		return nil, errors.NewParsingError(fmt.Sprintf("invalid YAML after first document: %v", err), errors.ErrInvalidYAML)
	}

	return fromNode(&doc, make(map[*yaml.Node]bool))
}

// ParseYAMLString parses a YAML document from a string.
func ParseYAMLString(yamlString string) (models.Value, error) {
	return ParseYAML(strings.NewReader(yamlString))
}

// ParseYAMLFile parses a YAML document from a file path.
func ParseYAMLFile(filePath string) (models.Value, error) {
	file, err := openInputFile(filePath)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(file)
	return ParseYAML(file)
}

// fromNode maps a decoded node onto the value tree. busy tracks anchors
// currently being expanded so a self-referencing alias cannot recurse
// forever.
func fromNode(n *yaml.Node, busy map[*yaml.Node]bool) (models.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return models.Null{}, nil
		}
		return fromNode(n.Content[0], busy)
	case yaml.AliasNode:
		if busy[n.Alias] {
			return nil, errors.NewParsingError(
				fmt.Sprintf("recursive alias '%s' on line %d", n.Value, n.Line),
				errors.ErrInvalidYAML,
			)
		}
		busy[n.Alias] = true
		value, err := fromNode(n.Alias, busy)
		delete(busy, n.Alias)
		return value, err
	case yaml.SequenceNode:
		seq := make(models.Sequence, 0, len(n.Content))
		for _, child := range n.Content {
			value, err := fromNode(child, busy)
			if err != nil {
				return nil, err
			}
			seq = append(seq, value)
		}
		return seq, nil
	case yaml.MappingNode:
		mapping := models.Mapping{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valueNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind == yaml.AliasNode {
				keyNode = keyNode.Alias
			}
			if keyNode.Kind != yaml.ScalarNode {
				return nil, errors.NewParsingError(
					fmt.Sprintf("mapping key on line %d is not a scalar", keyNode.Line),
					errors.ErrInvalidYAML,
				)
			}
			value, err := fromNode(valueNode, busy)
			if err != nil {
				return nil, err
			}
			mapping = mapping.Set(keyNode.Value, value)
		}
		return mapping, nil
	case yaml.ScalarNode:
		return fromScalar(n)
	default:
		return nil, errors.NewParsingError(
			fmt.Sprintf("unsupported YAML node on line %d", n.Line),
			errors.ErrInvalidYAML,
		)
	}
}

// fromScalar maps a scalar node by its resolved tag. Numeric literals that
// are already valid JSON pass through verbatim; YAML-only spellings (hex,
// octal, underscores, bare fractions) are canonicalized through the node's
// own decoding.
func fromScalar(n *yaml.Node) (models.Value, error) {
	switch n.Tag {
	case "!!null":
		return models.Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, errors.NewParsingError(
				fmt.Sprintf("cannot read boolean '%s' on line %d", n.Value, n.Line),
				errors.ErrInvalidYAML,
			)
		}
		return models.Bool(b), nil
	case "!!int":
		if jsonNumber.MatchString(n.Value) {
			return models.Number(n.Value), nil
		}
		var i int64
		if err := n.Decode(&i); err == nil {
			return models.Number(strconv.FormatInt(i, 10)), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return models.Number(strconv.FormatUint(u, 10)), nil
		}
		return nil, errors.NewParsingError(
			fmt.Sprintf("cannot read integer '%s' on line %d", n.Value, n.Line),
			errors.ErrInvalidYAML,
		)
	case "!!float":
		if jsonNumber.MatchString(n.Value) {
			return models.Number(n.Value), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, errors.NewParsingError(
				fmt.Sprintf("cannot read float '%s' on line %d", n.Value, n.Line),
				errors.ErrInvalidYAML,
			)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, errors.NewParsingError(
				fmt.Sprintf("'%s' is not a finite number", n.Value),
				errors.ErrNonFiniteNumber,
			)
		}
		return models.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		// Strings, timestamps, binary and custom tags keep the scalar text.
		return models.String(n.Value), nil
	}
}
