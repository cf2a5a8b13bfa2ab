package models

// Value is a single value in a parsed document. It is a closed set: exactly
// the six types below implement it, one per kind of value a document can hold.
type Value interface {
	isValue()
}

// Null represents an explicit null in the source document.
type Null struct{}

// Bool represents a boolean value.
type Bool bool

// Number holds a numeric value as the exact literal text from the source,
// so rendering repeats what the author wrote instead of reformatting it.
type Number string

// String represents a string value.
type String string

// Sequence represents an ordered list of values.
type Sequence []Value

// Mapping represents an object as an ordered list of members. Member order
// is the order keys appeared in the source, and keys are unique.
type Mapping []Member

// Member is a single key/value pair in a Mapping.
type Member struct {
	Key   string
	Value Value
}

func (Null) isValue()     {}
func (Bool) isValue()     {}
func (Number) isValue()   {}
func (String) isValue()   {}
func (Sequence) isValue() {}
func (Mapping) isValue()  {}

// Set replaces the value for key if the key is already present, keeping its
// original position, and appends a new member otherwise. Sources with
// duplicate keys keep the first position and the last value.
func (m Mapping) Set(key string, v Value) Mapping {
	for i := range m {
		if m[i].Key == key {
			m[i].Value = v
			return m
		}
	}
	return append(m, Member{Key: key, Value: v})
}

// Get returns the value for key and whether the key is present.
func (m Mapping) Get(key string) (Value, bool) {
	for i := range m {
		if m[i].Key == key {
			return m[i].Value, true
		}
	}
	return nil, false
}

// KindOf names v's variant for error messages and logging.
func KindOf(v Value) string {
	switch v.(type) {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return "unknown"
	}
}
