package persistence

import (
	"bytes"
	"fmt"
	"petcare/internal/models"

	json "github.com/goccy/go-json"
)

// CurrentVersion is the schema version written into every document.
const CurrentVersion = 1

type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// Encode wraps state in the versioned envelope.
func Encode(state any) ([]byte, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return json.Marshal(envelope{Version: CurrentVersion, State: raw})
}

// Decode fills state from a stored document. Besides the current envelope it
// reads the older {"state":..., "version":0} layout and bare state objects;
// migrated reports whether one of those was found.
func Decode(data []byte, state any) (migrated bool, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return false, fmt.Errorf("decode document: %w", err)
	}

	rawState, wrapped := fields["state"]
	if !wrapped {
		if err := json.Unmarshal(data, state); err != nil {
			return false, fmt.Errorf("decode bare state: %w", err)
		}
		return true, nil
	}

	version := 0
	if rawVersion, ok := fields["version"]; ok && !isNull(rawVersion) {
		if err := json.Unmarshal(rawVersion, &version); err != nil {
			return false, fmt.Errorf("decode version: %w", err)
		}
	}
	if version > CurrentVersion {
		return false, fmt.Errorf("%w: %d (supported up to %d)", models.ErrUnsupportedVersion, version, CurrentVersion)
	}

	if !isNull(rawState) {
		if err := json.Unmarshal(rawState, state); err != nil {
			return false, fmt.Errorf("decode state v%d: %w", version, err)
		}
	}
	return version < CurrentVersion, nil
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
