package valueobjects

import (
	"encoding/json"
	"sort"
)

// Property is a single key/value pair on a node or relationship
type Property struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// Properties is an ordered list of key/value pairs. Order is part of the
// value: the view presents properties in exactly this sequence.
type Properties struct {
	pairs []Property
}

// NewProperties creates Properties from pairs, preserving their order
func NewProperties(pairs ...Property) Properties {
	copied := make([]Property, len(pairs))
	copy(copied, pairs)
	return Properties{pairs: copied}
}

// NewPropertiesFromMap creates Properties from a map, ordered by key so the
// result is deterministic regardless of map iteration
func NewPropertiesFromMap(m map[string]interface{}) Properties {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]Property, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Property{Key: k, Value: m[k]})
	}
	return Properties{pairs: pairs}
}

// Len returns the number of properties
func (p Properties) Len() int {
	return len(p.pairs)
}

// Get looks up a property value by key
func (p Properties) Get(key string) (interface{}, bool) {
	for _, pair := range p.pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return nil, false
}

// Pairs returns a copy of the ordered pairs
func (p Properties) Pairs() []Property {
	copied := make([]Property, len(p.pairs))
	copy(copied, p.pairs)
	return copied
}

// Map returns the properties as an unordered map
func (p Properties) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(p.pairs))
	for _, pair := range p.pairs {
		m[pair.Key] = pair.Value
	}
	return m
}

// MarshalJSON renders the ordered pair list
func (p Properties) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.pairs)
}

// UnmarshalJSON restores the ordered pair list
func (p *Properties) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &p.pairs)
}
