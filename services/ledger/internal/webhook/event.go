package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pool-fund/services/ledger/internal/entity"
)

var ErrMalformedEvent = errors.New("malformed webhook event")

type envelope struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// ParseEvent decodes the provider envelope. Unknown types still parse; they
// come back with Kind == EventUnrecognized.
func ParseEvent(payload []byte) (*entity.Event, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if env.ID == "" || env.Type == "" {
		return nil, fmt.Errorf("%w: id and type are required", ErrMalformedEvent)
	}

	created := time.Now().UTC()
	if env.Created > 0 {
		created = time.Unix(env.Created, 0).UTC()
	}

	return &entity.Event{
		ID:      env.ID,
		Type:    env.Type,
		Kind:    entity.ParseEventKind(env.Type),
		Created: created,
		Object:  env.Data.Object,
	}, nil
}
