// Package sqlutil bridges sqlc generated rows and domain models.
package sqlutil

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

func ptr[T any](v T) *T {
	return &v
}

// ToSqlInt32 maps nil to NULL.
func ToSqlInt32(val *int) sql.NullInt32 {
	if val == nil {
		return sql.NullInt32{}
	}
	return ToSqlInt32Direct(*val)
}

func ToSqlInt32Direct(val int) sql.NullInt32 {
	return sql.NullInt32{Int32: int32(val), Valid: true}
}

func FromSqlInt32(val sql.NullInt32) *int {
	if !val.Valid {
		return nil
	}
	return ptr(int(val.Int32))
}

// ToSqlString maps nil and the empty string to NULL.
func ToSqlString(val *string) sql.NullString {
	if val == nil || *val == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *val, Valid: true}
}

func FromSqlStringPtr(val sql.NullString) *string {
	if !val.Valid {
		return nil
	}
	return ptr(val.String)
}

func ToNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func FromNullUUID(val uuid.NullUUID) *uuid.UUID {
	if !val.Valid {
		return nil
	}
	return ptr(val.UUID)
}

// ToSqlTime maps nil to NULL.
func ToSqlTime(val *time.Time) sql.NullTime {
	if val == nil {
		return sql.NullTime{}
	}
	return ToSqlTimeDirect(*val)
}

func ToSqlTimeDirect(val time.Time) sql.NullTime {
	return sql.NullTime{Time: val, Valid: true}
}

func FromSqlTime(val sql.NullTime) *time.Time {
	if !val.Valid {
		return nil
	}
	return ptr(val.Time)
}
