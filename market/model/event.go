package model

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/format"
	"github.com/curiohq/curio/lib/token"
	"github.com/curiohq/curio/market"
)

// Event represents a domain event emitted by a successful state change.
// Events are written in the same transaction as the change they describe,
// so observers never see an event for a state that did not commit.
type Event struct {
	Token   string
	Created time.Time

	Item    int64
	Kind    market.EvKind
	Payload string
}

// NewEventResource generates a new resource.
func NewEventResource(
	ctx context.Context,
	event *Event,
) market.EventResource {
	return market.EventResource{
		ID:      event.Token,
		Created: event.Created.UnixNano() / market.TimeResolutionNs,
		Item:    event.Item,
		Kind:    event.Kind,
		Payload: json.RawMessage(event.Payload),
	}
}

// CreateEvent creates and stores a new Event object. The payload is
// serialized as JSON.
func CreateEvent(
	ctx context.Context,
	item int64,
	kind market.EvKind,
	payload interface{},
) (*Event, error) {
	event := Event{
		Token:   token.New("event"),
		Created: time.Now().UTC(),

		Item:    item,
		Kind:    kind,
		Payload: format.JSONString(payload),
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO events
  (token, created, item, kind, payload)
VALUES
  (:token, :created, :item, :kind, :payload)
`, event); err != nil {
		return nil, errors.Trace(err)
	}

	return &event, nil
}

// LoadEventListByItem loads the events recorded for the given item, oldest
// first.
func LoadEventListByItem(
	ctx context.Context,
	item int64,
) ([]Event, error) {
	query := map[string]interface{}{
		"item": item,
	}

	ext := db.Ext(ctx)
	rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM events
WHERE item = :item
ORDER BY created ASC
`, query)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		event := Event{}
		if err := rows.StructScan(&event); err != nil {
			return nil, errors.Trace(err)
		}
		events = append(events, event)
	}

	return events, nil
}
