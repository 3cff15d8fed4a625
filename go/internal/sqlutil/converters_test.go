package sqlutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt32Conversions(t *testing.T) {
	assert.False(t, ToSqlInt32(nil).Valid)
	assert.Nil(t, FromSqlInt32(sql.NullInt32{}))

	three := 3
	got := FromSqlInt32(ToSqlInt32(&three))
	require.NotNil(t, got)
	assert.Equal(t, 3, *got)

	assert.Equal(t, sql.NullInt32{Int32: 7, Valid: true}, ToSqlInt32Direct(7))
}

func TestStringConversions(t *testing.T) {
	empty := ""
	assert.False(t, ToSqlString(nil).Valid)
	assert.False(t, ToSqlString(&empty).Valid, "empty strings are stored as NULL")

	desc := "first to the finish"
	ns := ToSqlString(&desc)
	assert.True(t, ns.Valid)

	back := FromSqlStringPtr(ns)
	require.NotNil(t, back)
	assert.Equal(t, desc, *back)
	assert.Nil(t, FromSqlStringPtr(sql.NullString{}))
}

func TestUUIDConversions(t *testing.T) {
	assert.False(t, ToNullUUID(nil).Valid)
	assert.Nil(t, FromNullUUID(uuid.NullUUID{}))

	id := uuid.New()
	back := FromNullUUID(ToNullUUID(&id))
	require.NotNil(t, back)
	assert.Equal(t, id, *back)
}

func TestTimeConversions(t *testing.T) {
	assert.False(t, ToSqlTime(nil).Valid)
	assert.Nil(t, FromSqlTime(sql.NullTime{}))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	back := FromSqlTime(ToSqlTimeDirect(now))
	require.NotNil(t, back)
	assert.True(t, now.Equal(*back))
}
