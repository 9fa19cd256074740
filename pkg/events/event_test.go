package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoreRecorded struct {
	BaseEvent
	Score int `json:"score"`
}

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()
	event := NewBaseEvent("scoring.assessment.completed", "agg-123", "CreditAssessment", "coop-9")
	after := time.Now().UTC()

	assert.NotEmpty(t, event.EventID())
	assert.Equal(t, "scoring.assessment.completed", event.EventType())
	assert.Equal(t, "agg-123", event.AggregateID())
	assert.Equal(t, "CreditAssessment", event.AggregateType())
	assert.Equal(t, "coop-9", event.TenantID())
	assert.False(t, event.OccurredAt().Before(before))
	assert.False(t, event.OccurredAt().After(after))
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	a := NewBaseEvent("x", "agg", "Agg", "")
	b := NewBaseEvent("x", "agg", "Agg", "")
	assert.NotEqual(t, a.EventID(), b.EventID())
}

func TestEmbeddedEvent_SerializesEnvelope(t *testing.T) {
	var event DomainEvent = scoreRecorded{
		BaseEvent: NewBaseEvent("scoring.assessment.completed", "agg-1", "CreditAssessment", "coop-1"),
		Score:     75,
	}

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "scoring.assessment.completed", decoded["event_type"])
	assert.Equal(t, "agg-1", decoded["aggregate_id"])
	assert.Equal(t, "coop-1", decoded["tenant_id"])
	assert.EqualValues(t, 75, decoded["score"])
}

func TestEventCollector(t *testing.T) {
	var collector EventCollector
	assert.Nil(t, collector.ClearEvents())

	collector.Record(NewBaseEvent("Event1", "agg", "Aggregate", ""))
	collector.Record(NewBaseEvent("Event2", "agg", "Aggregate", ""))

	cleared := collector.ClearEvents()
	require.Len(t, cleared, 2)
	assert.Equal(t, "Event1", cleared[0].EventType())
	assert.Equal(t, "Event2", cleared[1].EventType())
	assert.Empty(t, collector.ClearEvents())
}
