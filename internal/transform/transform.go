package transform

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/refract/internal/errors"
	"github.com/mcncl/refract/internal/models"
)

// KeyCase names a mapping-key rewriting style.
type KeyCase string

const (
	KeyCaseNone   KeyCase = "none"
	KeyCaseCamel  KeyCase = "camel"
	KeyCasePascal KeyCase = "pascal"
	KeyCaseSnake  KeyCase = "snake"
	KeyCaseKebab  KeyCase = "kebab"
)

// RenameKeys returns a copy of v with every mapping key rewritten to the
// requested case, at every depth. Keys that collide after renaming follow
// the duplicate-key rule: first position, last value. KeyCaseNone returns v
// untouched.
func RenameKeys(v models.Value, keyCase KeyCase) (models.Value, error) {
	if keyCase == KeyCaseNone || keyCase == "" {
		return v, nil
	}
	rename, err := renamer(keyCase)
	if err != nil {
		return nil, err
	}
	return renameValue(v, rename), nil
}

func renamer(keyCase KeyCase) (func(string) string, error) {
	switch keyCase {
	case KeyCaseCamel:
		return strcase.ToLowerCamel, nil
	case KeyCasePascal:
		return strcase.ToCamel, nil
	case KeyCaseSnake:
		return strcase.ToSnake, nil
	case KeyCaseKebab:
		return strcase.ToKebab, nil
	default:
		return nil, errors.NewTransformError(
			fmt.Sprintf("unknown key case '%s'", keyCase),
			errors.ErrUnsupportedFormat,
		)
	}
}

func renameValue(v models.Value, rename func(string) string) models.Value {
	switch val := v.(type) {
	case models.Mapping:
		out := models.Mapping{}
		for _, m := range val {
			out = out.Set(rename(m.Key), renameValue(m.Value, rename))
		}
		return out
	case models.Sequence:
		out := make(models.Sequence, 0, len(val))
		for _, e := range val {
			out = append(out, renameValue(e, rename))
		}
		return out
	default:
		return v
	}
}
