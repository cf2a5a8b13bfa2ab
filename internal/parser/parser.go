package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mcncl/refract/internal/errors"
	"github.com/mcncl/refract/internal/logging"
	"github.com/mcncl/refract/internal/models"
)

// Parse converts a JSON document from an io.Reader into a value tree.
func Parse(reader io.Reader) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return parseBytes(data)
}

// ParseString parses a JSON document from a string.
func ParseString(jsonString string) (models.Value, error) {
	return parseBytes([]byte(jsonString))
}

// ParseFile parses a JSON document from a file path.
func ParseFile(filePath string) (models.Value, error) {
	file, err := openInputFile(filePath)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(file)
	return Parse(file)
}

func parseBytes(data []byte) (models.Value, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, errors.NewInputError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.NewParsingError("input is not a single valid JSON document", errors.ErrInvalidJSON)
	}
	log := logging.GetLogger("parser")
	log.Debug().Int("bytes", len(data)).Msg("Parsing JSON input")
	return fromResult(gjson.ParseBytes(data)), nil
}

// fromResult maps a gjson result onto the value tree. Iteration follows
// document order; duplicate keys keep their first position and take the
// last value.
func fromResult(res gjson.Result) models.Value {
	switch res.Type {
	case gjson.Null:
		return models.Null{}
	case gjson.False:
		return models.Bool(false)
	case gjson.True:
		return models.Bool(true)
	case gjson.Number:
		// Raw is the untouched literal from the source.
		return models.Number(res.Raw)
	case gjson.String:
		return models.String(res.String())
	default:
		if res.IsArray() {
			elems := res.Array()
			seq := make(models.Sequence, 0, len(elems))
			for _, e := range elems {
				seq = append(seq, fromResult(e))
			}
			return seq
		}
		mapping := models.Mapping{}
		res.ForEach(func(key, value gjson.Result) bool {
			mapping = mapping.Set(key.String(), fromResult(value))
			return true
		})
		return mapping
	}
}

// openInputFile validates and opens an input file, rejecting blank paths,
// missing files and empty files up front.
func openInputFile(filePath string) (*os.File, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}

	stat, err := file.Stat()
	if err != nil {
		closeQuietly(file)
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		closeQuietly(file)
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return file, nil
}

func closeQuietly(file *os.File) {
	if err := file.Close(); err != nil {
		log := logging.GetLogger("parser")
		log.Warn().Err(err).Str("file", file.Name()).Msg("Failed to close file")
	}
}
