package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/opsdesk/backend/internal/domain/shared"
)

// EventUpgrader rewrites an event payload from one schema version to the next.
// Each upgrader covers a single step; the target version is always the source
// version plus one.
type EventUpgrader interface {
	// SourceVersion returns the schema version this upgrader reads
	SourceVersion() int
	// Upgrade transforms a payload written at SourceVersion into the next version
	Upgrade(payload []byte) ([]byte, error)
}

// eventSchema describes one registered event type
type eventSchema struct {
	goType         reflect.Type
	currentVersion int
	upgraders      map[int]EventUpgrader // source version -> step to source+1
}

// EventSerializer converts domain events to and from their stored JSON form.
// Payloads written at an older schema version are upgraded step by step during
// deserialization, so handlers only ever see the current shape of an event.
type EventSerializer struct {
	mu      sync.RWMutex
	schemas map[string]*eventSchema // event type name -> schema
}

// NewEventSerializer creates an empty serializer
func NewEventSerializer() *EventSerializer {
	return &EventSerializer{
		schemas: make(map[string]*eventSchema),
	}
}

// Register binds an event type name to its Go shape at schema version 1.
// The name must match what EventType() returns on the event.
func (s *EventSerializer) Register(eventType string, instance shared.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.schemas[eventType] = &eventSchema{
		goType:         structTypeOf(instance),
		currentVersion: 1,
		upgraders:      make(map[int]EventUpgrader),
	}
}

// RegisterVersioned binds an event type whose payload has evolved.
// The instance is the current shape; the upgraders must form an unbroken
// chain from version 1 up to currentVersion.
func (s *EventSerializer) RegisterVersioned(eventType string, currentVersion int, instance shared.DomainEvent, upgraders ...EventUpgrader) error {
	steps := make(map[int]EventUpgrader, len(upgraders))
	for _, u := range upgraders {
		steps[u.SourceVersion()] = u
	}
	for v := 1; v < currentVersion; v++ {
		if _, ok := steps[v]; !ok {
			return fmt.Errorf("missing upgrader for version %d -> %d of %s", v, v+1, eventType)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.schemas[eventType] = &eventSchema{
		goType:         structTypeOf(instance),
		currentVersion: currentVersion,
		upgraders:      steps,
	}
	return nil
}

// Serialize serializes a domain event to JSON bytes
func (s *EventSerializer) Serialize(event shared.DomainEvent) ([]byte, error) {
	return json.Marshal(event)
}

// Deserialize decodes a stored payload into its registered Go type,
// upgrading old payloads to the current schema version first.
func (s *EventSerializer) Deserialize(eventType string, data []byte) (shared.DomainEvent, error) {
	s.mu.RLock()
	schema, ok := s.schemas[eventType]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	version := PayloadVersion(data)
	if version > schema.currentVersion {
		return nil, fmt.Errorf("event %s has schema version %d, newer than the supported %d", eventType, version, schema.currentVersion)
	}

	payload := data
	for v := version; v < schema.currentVersion; v++ {
		upgrader, ok := schema.upgraders[v]
		if !ok {
			return nil, fmt.Errorf("missing upgrader for version %d -> %d of %s", v, v+1, eventType)
		}
		upgraded, err := upgrader.Upgrade(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to upgrade %s from v%d to v%d: %w", eventType, v, v+1, err)
		}
		payload = upgraded
	}

	eventPtr := reflect.New(schema.goType).Interface()
	if err := json.Unmarshal(payload, eventPtr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	event, ok := eventPtr.(shared.DomainEvent)
	if !ok {
		return nil, fmt.Errorf("deserialized object does not implement DomainEvent")
	}
	return event, nil
}

// IsRegistered checks if an event type is registered
func (s *EventSerializer) IsRegistered(eventType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.schemas[eventType]
	return ok
}

// CurrentVersion returns the registered schema version for an event type
func (s *EventSerializer) CurrentVersion(eventType string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schema, ok := s.schemas[eventType]
	if !ok {
		return 0, false
	}
	return schema.currentVersion, true
}

// RegisteredTypes returns all registered event type names
func (s *EventSerializer) RegisteredTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]string, 0, len(s.schemas))
	for t := range s.schemas {
		types = append(types, t)
	}
	return types
}

// PayloadVersion reports the schema version recorded in a raw payload.
// Payloads without a version field predate versioning and count as version 1.
func PayloadVersion(payload []byte) int {
	var probe struct {
		SchemaVersion int `json:"schema_version"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil || probe.SchemaVersion == 0 {
		return 1
	}
	return probe.SchemaVersion
}

// structTypeOf returns the underlying struct type of an event instance
func structTypeOf(instance shared.DomainEvent) reflect.Type {
	t := reflect.TypeOf(instance)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// PayloadUpgrader implements EventUpgrader over a map transform. The payload
// is unmarshaled to a generic map, transformed, stamped with the new version
// and marshaled back.
type PayloadUpgrader struct {
	sourceVersion int
	transform     func(data map[string]any) (map[string]any, error)
}

// NewPayloadUpgrader creates an upgrader for a single version step
func NewPayloadUpgrader(sourceVersion int, transform func(data map[string]any) (map[string]any, error)) *PayloadUpgrader {
	return &PayloadUpgrader{
		sourceVersion: sourceVersion,
		transform:     transform,
	}
}

// SourceVersion returns the schema version this upgrader reads
func (u *PayloadUpgrader) SourceVersion() int {
	return u.sourceVersion
}

// Upgrade transforms the payload into the next schema version
func (u *PayloadUpgrader) Upgrade(payload []byte) ([]byte, error) {
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	transformed, err := u.transform(data)
	if err != nil {
		return nil, fmt.Errorf("transform failed: %w", err)
	}
	transformed["schema_version"] = u.sourceVersion + 1

	return json.Marshal(transformed)
}

var _ EventUpgrader = (*PayloadUpgrader)(nil)
