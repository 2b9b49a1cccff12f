package event

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOutboxPublisher_PublishWithTx(t *testing.T) {
	db, mock := setupMockDB(t)
	serializer := NewEventSerializer()
	serializer.Register("TestEvent", &testEvent{})
	publisher := NewOutboxPublisher(serializer)

	event := newTestEvent("TestEvent")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "outbox_events"`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return publisher.PublishWithTx(context.Background(), tx, event)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxPublisher_PublishWithTx_NoEvents(t *testing.T) {
	db, _ := setupMockDB(t)
	serializer := NewEventSerializer()
	publisher := NewOutboxPublisher(serializer)

	err := publisher.PublishWithTx(context.Background(), db)

	require.NoError(t, err)
}

func TestOutboxPublisher_SaveEvents(t *testing.T) {
	db, mock := setupMockDB(t)
	serializer := NewEventSerializer()
	serializer.Register("TestEvent", &testEvent{})
	publisher := NewOutboxPublisher(serializer)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "outbox_events"`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return publisher.SaveEvents(context.Background(), tx, newTestEvent("TestEvent"))
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxPublisher_SaveEvents_WrongTxType(t *testing.T) {
	serializer := NewEventSerializer()
	publisher := NewOutboxPublisher(serializer)

	err := publisher.SaveEvents(context.Background(), "not a transaction", newTestEvent("TestEvent"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a *gorm.DB")
}

func TestOutboxPublisher_SaveEvents_NoEvents(t *testing.T) {
	serializer := NewEventSerializer()
	publisher := NewOutboxPublisher(serializer)

	err := publisher.SaveEvents(context.Background(), "ignored")

	require.NoError(t, err)
}
