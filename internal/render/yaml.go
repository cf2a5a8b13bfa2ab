package render

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mcncl/refract/internal/errors"
	"github.com/mcncl/refract/internal/models"
)

var (
	printableASCII = regexp.MustCompile(`^[\x20-\x7e]+$`)
	blockSafe      = regexp.MustCompile(`^[\x20-\x7e\n]+$`)
)

// Characters that start a YAML token or document structure; a bare scalar
// must not begin with one of them.
const yamlUnsafeLead = "-?:,[]{}#&*!|>'\"%@`+."

// YAML renders v to the sink as YAML.
func YAML(s *Sink, v models.Value) error {
	return yamlValue(s, 0, false, v)
}

// yamlValue writes one value. mapValue says the value sits to the right of a
// "key:", which changes spacing and forces a newline before nested content.
func yamlValue(s *Sink, depth int, mapValue bool, v models.Value) error {
	switch val := v.(type) {
	case models.Sequence:
		if len(val) == 0 {
			if mapValue {
				if err := s.Plain(" "); err != nil {
					return err
				}
			}
			return s.Plain("[]")
		}
		for i, e := range val {
			if i > 0 || mapValue {
				if err := s.Plain("\n" + pad(depth)); err != nil {
					return err
				}
			}
			if err := s.Plain("- "); err != nil {
				return err
			}
			if err := yamlValue(s, depth+1, false, e); err != nil {
				return err
			}
		}
		return nil
	case models.Mapping:
		if len(val) == 0 {
			if mapValue {
				if err := s.Plain(" "); err != nil {
					return err
				}
			}
			return s.Plain("{}")
		}
		for i, m := range val {
			if i > 0 || mapValue {
				if err := s.Plain("\n" + pad(depth)); err != nil {
					return err
				}
			}
			if err := s.Tagged(RoleKey, yamlFlowString(m.Key)); err != nil {
				return err
			}
			if err := s.Plain(":"); err != nil {
				return err
			}
			if err := yamlValue(s, depth+1, true, m.Value); err != nil {
				return err
			}
		}
		return nil
	case models.String:
		if mapValue {
			if err := s.Plain(" "); err != nil {
				return err
			}
		}
		return s.Tagged(RoleString, yamlString(depth, string(val)))
	case models.Number, models.Bool, models.Null:
		if mapValue {
			if err := s.Plain(" "); err != nil {
				return err
			}
		}
		return s.Plain(scalarText(v))
	default:
		return errors.NewRenderError("cannot render "+models.KindOf(v)+" value", nil)
	}
}

// yamlString picks between block literal and flow form. Block form is only
// safe for printable ASCII: anything else keeps its escapes in a quoted flow
// scalar.
func yamlString(depth int, s string) string {
	if strings.Contains(s, "\n") && blockSafe.MatchString(s) {
		return yamlBlockString(depth, s)
	}
	return yamlFlowString(s)
}

// yamlBlockString lays s out as a literal block scalar, one source line per
// output line. An explicit indentation indicator is needed when the first
// line starts with whitespace, since the parser could not infer the indent.
func yamlBlockString(depth int, s string) string {
	var b strings.Builder
	b.WriteString("|")
	if first, _ := utf8.DecodeRuneInString(s); unicode.IsSpace(first) {
		b.WriteString(strconv.Itoa(tabWidth))
	}
	lines := strings.Split(s, "\n")
	if strings.HasSuffix(s, "\n") {
		lines = lines[:len(lines)-1]
	}
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(pad(depth))
		b.WriteString(line)
	}
	return b.String()
}

// yamlFlowString returns s bare when no YAML parser could mistake it for
// something else, and JSON-quoted otherwise. The quoted form is a valid YAML
// double-quoted scalar.
func yamlFlowString(s string) string {
	if !printableASCII.MatchString(s) {
		return quote(s)
	}
	first, _ := utf8.DecodeRuneInString(s)
	if unicode.IsSpace(first) || ('0' <= first && first <= '9') || strings.ContainsRune(yamlUnsafeLead, first) {
		return quote(s)
	}
	if strings.Contains(s, ": ") || strings.Contains(s, " #") {
		return quote(s)
	}
	if last, _ := utf8.DecodeLastRuneInString(s); unicode.IsSpace(last) {
		return quote(s)
	}
	return s
}
