package render

import (
	"regexp"
	"strconv"

	"github.com/mcncl/refract/internal/errors"
	"github.com/mcncl/refract/internal/models"
)

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// TOML renders v to the sink as TOML. Null members of mappings and null
// elements of arrays are dropped; a null anywhere else has no TOML form and
// fails the render.
func TOML(s *Sink, v models.Value) error {
	return tomlValue(s, "", v)
}

// isTableArray reports whether v is a sequence whose every element is a
// mapping, the shape TOML writes as an array of tables. An empty sequence
// qualifies.
func isTableArray(v models.Value) bool {
	seq, ok := v.(models.Sequence)
	if !ok {
		return false
	}
	for _, e := range seq {
		if _, ok := e.(models.Mapping); !ok {
			return false
		}
	}
	return true
}

// shouldNest reports whether a mapping member's value is hoisted out into
// its own [table] or [[table array]] rather than written inline.
func shouldNest(v models.Value) bool {
	if _, ok := v.(models.Mapping); ok {
		return true
	}
	return isTableArray(v)
}

func isNull(v models.Value) bool {
	_, ok := v.(models.Null)
	return ok
}

func withoutNulls(m models.Mapping) models.Mapping {
	out := make(models.Mapping, 0, len(m))
	for _, member := range m {
		if !isNull(member.Value) {
			out = append(out, member)
		}
	}
	return out
}

// hasFlatMember reports whether any member of m, nulls included, would be
// written as a plain key = value line. It decides whether a mapping's own
// header appears: a mapping holding only nested tables needs no header of
// its own, the deeper headers spell out the full path.
func hasFlatMember(m models.Mapping) bool {
	for _, member := range m {
		if !shouldNest(member.Value) {
			return true
		}
	}
	return false
}

// tomlValue writes one value. context is the accumulated dotted table path,
// ending in "." whenever it is non-empty.
func tomlValue(s *Sink, context string, v models.Value) error {
	switch val := v.(type) {
	case models.Sequence:
		return tomlInline(s, v)
	case models.Mapping:
		members := withoutNulls(val)
		var flat, nested []models.Member
		for _, m := range members {
			if shouldNest(m.Value) {
				nested = append(nested, m)
			} else {
				flat = append(flat, m)
			}
		}

		for i, m := range flat {
			if err := s.Tagged(RoleKey, tomlKey(m.Key)); err != nil {
				return err
			}
			if err := s.Plain(" = "); err != nil {
				return err
			}
			if err := tomlValue(s, context, m.Value); err != nil {
				return err
			}
			if i != len(flat)-1 {
				if err := s.Plain("\n"); err != nil {
					return err
				}
			}
		}

		for i, m := range nested {
			key := context + tomlKey(m.Key)
			if len(flat) > 0 || i > 0 {
				if err := s.Plain("\n\n"); err != nil {
					return err
				}
			}
			switch child := m.Value.(type) {
			case models.Mapping:
				if hasFlatMember(child) {
					if err := s.Tagged(RoleHeader, "["+key+"]"); err != nil {
						return err
					}
					if err := s.Plain("\n"); err != nil {
						return err
					}
				}
				if err := tomlValue(s, key+".", child); err != nil {
					return err
				}
			case models.Sequence:
				for j, e := range child {
					if j > 0 {
						if err := s.Plain("\n\n"); err != nil {
							return err
						}
					}
					table, ok := e.(models.Mapping)
					if !ok {
						// shouldNest only admits sequences of mappings.
						return errors.NewRenderError("table array holds a "+models.KindOf(e), nil)
					}
					if err := s.Tagged(RoleHeader, "[["+key+"]]"); err != nil {
						return err
					}
					if len(table) > 0 {
						if err := s.Plain("\n"); err != nil {
							return err
						}
					}
					if err := tomlValue(s, key+".", table); err != nil {
						return err
					}
				}
			}
		}
		return nil
	case models.String:
		return s.Tagged(RoleString, quote(string(val)))
	case models.Number:
		return s.Plain(string(val))
	case models.Bool:
		return s.Plain(strconv.FormatBool(bool(val)))
	case models.Null:
		return errors.NewRenderError("can't convert null to TOML", errors.ErrNullValue)
	default:
		return errors.NewRenderError("cannot render "+models.KindOf(v)+" value", nil)
	}
}

// tomlInline writes v in inline form: arrays bracketed on one line, mappings
// as inline tables. Inline position never introduces table headers.
func tomlInline(s *Sink, v models.Value) error {
	switch val := v.(type) {
	case models.Sequence:
		elems := make([]models.Value, 0, len(val))
		for _, e := range val {
			if !isNull(e) {
				elems = append(elems, e)
			}
		}
		if err := s.Plain("["); err != nil {
			return err
		}
		for i, e := range elems {
			if err := tomlInline(s, e); err != nil {
				return err
			}
			if i != len(elems)-1 {
				if err := s.Plain(", "); err != nil {
					return err
				}
			}
		}
		return s.Plain("]")
	case models.Mapping:
		members := withoutNulls(val)
		if err := s.Plain("{"); err != nil {
			return err
		}
		for i, m := range members {
			if err := s.Tagged(RoleKey, " "+tomlKey(m.Key)); err != nil {
				return err
			}
			if err := s.Plain(" = "); err != nil {
				return err
			}
			if err := tomlInline(s, m.Value); err != nil {
				return err
			}
			if i == len(members)-1 {
				if err := s.Plain(" "); err != nil {
					return err
				}
			} else if err := s.Plain(","); err != nil {
				return err
			}
		}
		return s.Plain("}")
	default:
		return tomlValue(s, "", v)
	}
}

// tomlKey returns a key bare when TOML allows it and quoted otherwise.
func tomlKey(s string) string {
	if bareKey.MatchString(s) {
		return s
	}
	return quote(s)
}
