package profile

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion is the version written by Marshal.
//
//	1: unversioned blobs with flat legacy keys (xp, level, streak, history)
//	2: current layout
const SchemaVersion = 2

// document is the persisted envelope of a profile.
type document struct {
	SchemaVersion int `json:"schemaVersion"`
	*UserProfile
}

// Marshal encodes p in the current schema.
func Marshal(p *UserProfile) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("marshal profile: nil profile")
	}
	b, err := json.Marshal(document{SchemaVersion: SchemaVersion, UserProfile: p})
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	return b, nil
}
