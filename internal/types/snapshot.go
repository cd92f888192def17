// Package types provides type definitions for structured data used throughout the cv-builder system.
package types

// Snapshot is the durable representation of the whole form: every simple/skill field value
// and every entry group, with entry sub-fields keyed by their persisted key.
type Snapshot struct {
	SimpleInputs map[string]string              `json:"simpleInputs"`
	DynamicLists map[string][]map[string]string `json:"dynamicLists"`
}

// NewSnapshot returns an empty snapshot with initialized maps.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		SimpleInputs: make(map[string]string),
		DynamicLists: make(map[string][]map[string]string),
	}
}

// EntryCount returns the total number of entries across all groups.
func (s *Snapshot) EntryCount() int {
	n := 0
	for _, list := range s.DynamicLists {
		n += len(list)
	}
	return n
}
