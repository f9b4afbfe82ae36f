package store

import (
	"encoding/json"
	"fmt"

	e "github.com/gartstein/corpsec/internal/compliance/errors"
	"github.com/gartstein/corpsec/internal/compliance/models"
)

// SchemaVersion is the version written into every snapshot envelope.
// Version 0 is the bare CompanyState payload written before envelopes existed.
const SchemaVersion = 1

type envelope struct {
	Version int                  `json:"version"`
	State   *models.CompanyState `json:"state"`
}

func encodeSnapshot(state models.CompanyState) ([]byte, error) {
	return json.Marshal(envelope{Version: SchemaVersion, State: &state})
}

func decodeSnapshot(data []byte) (models.CompanyState, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return models.CompanyState{}, err
	}

	state := models.NewCompanyState()
	raw, versioned := probe["version"]
	if !versioned {
		// Version 0: the aggregate itself is the payload.
		if err := json.Unmarshal(data, &state); err != nil {
			return models.CompanyState{}, err
		}
		state.Normalize()
		return state, nil
	}

	var version int
	if err := json.Unmarshal(raw, &version); err != nil {
		return models.CompanyState{}, fmt.Errorf("snapshot version: %w", err)
	}
	if version != SchemaVersion {
		return models.CompanyState{}, fmt.Errorf("%w: %d", e.ErrUnsupportedVersion, version)
	}
	if body, ok := probe["state"]; ok {
		if err := json.Unmarshal(body, &state); err != nil {
			return models.CompanyState{}, err
		}
	}
	state.Normalize()
	return state, nil
}
