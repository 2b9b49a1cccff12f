package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serializerTestEvent is a test event for serializer tests
type serializerTestEvent struct {
	shared.BaseDomainEvent
	Data    string `json:"data"`
	Counter int    `json:"counter"`
}

func newSerializerTestEvent() *serializerTestEvent {
	return &serializerTestEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SerializerTestEvent", "TestAggregate", uuid.New()),
		Data:            "test data",
		Counter:         42,
	}
}

func TestEventSerializer_Register(t *testing.T) {
	serializer := NewEventSerializer()

	serializer.Register("SerializerTestEvent", &serializerTestEvent{})

	assert.True(t, serializer.IsRegistered("SerializerTestEvent"))
	assert.False(t, serializer.IsRegistered("UnknownEvent"))
}

func TestEventSerializer_RegisteredTypes(t *testing.T) {
	serializer := NewEventSerializer()

	serializer.Register("Event1", &serializerTestEvent{})
	serializer.Register("Event2", &serializerTestEvent{})

	types := serializer.RegisteredTypes()
	assert.Len(t, types, 2)
	assert.Contains(t, types, "Event1")
	assert.Contains(t, types, "Event2")
}

func TestEventSerializer_Serialize(t *testing.T) {
	serializer := NewEventSerializer()
	event := newSerializerTestEvent()

	data, err := serializer.Serialize(event)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, string(data), `"data":"test data"`)
	assert.Contains(t, string(data), `"counter":42`)
}

func TestEventSerializer_Deserialize(t *testing.T) {
	serializer := NewEventSerializer()
	serializer.Register("SerializerTestEvent", &serializerTestEvent{})

	original := newSerializerTestEvent()
	data, err := serializer.Serialize(original)
	require.NoError(t, err)

	deserialized, err := serializer.Deserialize("SerializerTestEvent", data)
	require.NoError(t, err)

	event, ok := deserialized.(*serializerTestEvent)
	require.True(t, ok)
	assert.Equal(t, original.EventType(), event.EventType())
	assert.Equal(t, original.Data, event.Data)
	assert.Equal(t, original.Counter, event.Counter)
}

func TestEventSerializer_Deserialize_UnknownType(t *testing.T) {
	serializer := NewEventSerializer()

	_, err := serializer.Deserialize("UnknownEvent", []byte(`{}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}

func TestEventSerializer_Deserialize_InvalidJSON(t *testing.T) {
	serializer := NewEventSerializer()
	serializer.Register("SerializerTestEvent", &serializerTestEvent{})

	_, err := serializer.Deserialize("SerializerTestEvent", []byte(`invalid json`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal")
}

func TestEventSerializer_RoundTrip_PreservesAllFields(t *testing.T) {
	serializer := NewEventSerializer()
	serializer.Register("SerializerTestEvent", &serializerTestEvent{})

	aggregateID := uuid.New()
	original := &serializerTestEvent{
		BaseDomainEvent: shared.BaseDomainEvent{
			ID:        uuid.New(),
			Type:      "SerializerTestEvent",
			Timestamp: time.Now().Truncate(time.Second),
			AggID:     aggregateID,
			AggType:   "TestAggregate",
			Version:   1,
		},
		Data:    "important data",
		Counter: 99,
	}

	data, err := serializer.Serialize(original)
	require.NoError(t, err)

	deserialized, err := serializer.Deserialize("SerializerTestEvent", data)
	require.NoError(t, err)

	event := deserialized.(*serializerTestEvent)
	assert.Equal(t, original.EventID(), event.EventID())
	assert.Equal(t, original.EventType(), event.EventType())
	assert.Equal(t, original.AggregateID(), event.AggregateID())
	assert.Equal(t, original.AggregateType(), event.AggregateType())
	assert.Equal(t, original.Data, event.Data)
	assert.Equal(t, original.Counter, event.Counter)
}

func TestEventSerializer_RegisterVersioned_MissingUpgrader(t *testing.T) {
	serializer := NewEventSerializer()

	err := serializer.RegisterVersioned("SerializerTestEvent", 3, &serializerTestEvent{},
		NewPayloadUpgrader(1, func(data map[string]any) (map[string]any, error) {
			return data, nil
		}),
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing upgrader for version 2 -> 3")
}

func TestEventSerializer_Deserialize_UpgradesOldPayload(t *testing.T) {
	serializer := NewEventSerializer()

	// Version 1 had "message"; version 2 renamed it to "data" and added "counter"
	err := serializer.RegisterVersioned("SerializerTestEvent", 2, &serializerTestEvent{},
		NewPayloadUpgrader(1, func(data map[string]any) (map[string]any, error) {
			if msg, ok := data["message"]; ok {
				data["data"] = msg
				delete(data, "message")
			}
			data["counter"] = 0
			return data, nil
		}),
	)
	require.NoError(t, err)

	v1Payload, err := json.Marshal(map[string]any{
		"id":             uuid.New().String(),
		"type":           "SerializerTestEvent",
		"timestamp":      time.Now().Format(time.RFC3339),
		"aggregate_id":   uuid.New().String(),
		"aggregate_type": "TestAggregate",
		"schema_version": 1,
		"message":        "from the old shape",
	})
	require.NoError(t, err)

	deserialized, err := serializer.Deserialize("SerializerTestEvent", v1Payload)
	require.NoError(t, err)

	event := deserialized.(*serializerTestEvent)
	assert.Equal(t, "from the old shape", event.Data)
	assert.Equal(t, 0, event.Counter)
}

func TestEventSerializer_Deserialize_CurrentVersionSkipsUpgrade(t *testing.T) {
	serializer := NewEventSerializer()

	upgraderRan := false
	err := serializer.RegisterVersioned("SerializerTestEvent", 2, &serializerTestEvent{},
		NewPayloadUpgrader(1, func(data map[string]any) (map[string]any, error) {
			upgraderRan = true
			return data, nil
		}),
	)
	require.NoError(t, err)

	current := newSerializerTestEvent()
	current.Version = 2
	data, err := serializer.Serialize(current)
	require.NoError(t, err)

	_, err = serializer.Deserialize("SerializerTestEvent", data)
	require.NoError(t, err)
	assert.False(t, upgraderRan)
}

func TestEventSerializer_Deserialize_NewerVersionRejected(t *testing.T) {
	serializer := NewEventSerializer()
	serializer.Register("SerializerTestEvent", &serializerTestEvent{})

	payload := []byte(`{"schema_version": 5}`)
	_, err := serializer.Deserialize("SerializerTestEvent", payload)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than the supported")
}

func TestPayloadVersion(t *testing.T) {
	assert.Equal(t, 1, PayloadVersion([]byte(`{}`)))
	assert.Equal(t, 1, PayloadVersion([]byte(`not json`)))
	assert.Equal(t, 3, PayloadVersion([]byte(`{"schema_version": 3}`)))
}

func TestEventSerializer_CurrentVersion(t *testing.T) {
	serializer := NewEventSerializer()
	serializer.Register("SerializerTestEvent", &serializerTestEvent{})

	version, ok := serializer.CurrentVersion("SerializerTestEvent")
	assert.True(t, ok)
	assert.Equal(t, 1, version)

	_, ok = serializer.CurrentVersion("UnknownEvent")
	assert.False(t, ok)
}
