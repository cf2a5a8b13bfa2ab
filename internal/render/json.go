package render

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mcncl/refract/internal/errors"
	"github.com/mcncl/refract/internal/models"
)

// JSON renders v to the sink as indented JSON.
func JSON(s *Sink, v models.Value) error {
	return jsonValue(s, 0, v)
}

func jsonValue(s *Sink, depth int, v models.Value) error {
	switch val := v.(type) {
	case models.Sequence:
		if err := s.Plain("["); err != nil {
			return err
		}
		for i, e := range val {
			if err := s.Plain("\n" + pad(depth+1)); err != nil {
				return err
			}
			if err := jsonValue(s, depth+1, e); err != nil {
				return err
			}
			if i == len(val)-1 {
				if err := s.Plain("\n" + pad(depth)); err != nil {
					return err
				}
			} else if err := s.Plain(","); err != nil {
				return err
			}
		}
		return s.Plain("]")
	case models.Mapping:
		if err := s.Plain("{"); err != nil {
			return err
		}
		for i, m := range val {
			if err := s.Plain("\n" + pad(depth+1)); err != nil {
				return err
			}
			if err := s.Tagged(RoleKey, quote(m.Key)); err != nil {
				return err
			}
			if err := s.Plain(": "); err != nil {
				return err
			}
			if err := jsonValue(s, depth+1, m.Value); err != nil {
				return err
			}
			if i == len(val)-1 {
				if err := s.Plain("\n" + pad(depth)); err != nil {
					return err
				}
			} else if err := s.Plain(","); err != nil {
				return err
			}
		}
		return s.Plain("}")
	case models.String:
		return s.Tagged(RoleString, quote(string(val)))
	case models.Number, models.Bool, models.Null:
		return s.Plain(scalarText(v))
	default:
		return errors.NewRenderError("cannot render "+models.KindOf(v)+" value", nil)
	}
}

// quote returns s as a JSON string literal. The same literal doubles as a
// YAML double-quoted scalar and a TOML basic string, so all three renderers
// share it. HTML characters are not escaped.
func quote(s string) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	// Encoding a plain string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}

// scalarText is the plain literal for a non-string scalar. Numbers repeat
// the source text untouched.
func scalarText(v models.Value) string {
	switch val := v.(type) {
	case models.Number:
		return string(val)
	case models.Bool:
		return strconv.FormatBool(bool(val))
	default:
		return "null"
	}
}
