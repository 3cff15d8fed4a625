package participants

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scotty-olympics/olympics/go/internal/participants/db"
)

type fakeQuerier struct {
	rows []db.Participant
	err  error
}

func (f *fakeQuerier) GetParticipant(_ context.Context, id uuid.UUID) (db.Participant, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return db.Participant{}, sql.ErrNoRows
}

func (f *fakeQuerier) GetParticipantByAuthUserID(_ context.Context, authUserID uuid.NullUUID) (db.Participant, error) {
	if f.err != nil {
		return db.Participant{}, f.err
	}
	for _, r := range f.rows {
		if r.AuthUserID.Valid && r.AuthUserID.UUID == authUserID.UUID {
			return r, nil
		}
	}
	return db.Participant{}, sql.ErrNoRows
}

func (f *fakeQuerier) ListParticipants(context.Context) ([]db.Participant, error) {
	return f.rows, f.err
}

func TestApp_ResolveParticipant(t *testing.T) {
	authUserID := uuid.New()
	row := db.Participant{
		ID:         uuid.New(),
		AuthUserID: uuid.NullUUID{UUID: authUserID, Valid: true},
		Name:       "Ada",
		Email:      "ada@example.com",
		AvatarKey:  sql.NullString{String: "avatars/ada.png", Valid: true},
		IsAdmin:    true,
		CreatedAt:  time.Now(),
	}
	app := NewApp(NewRepository(&fakeQuerier{rows: []db.Participant{row}}))

	p, err := app.ResolveParticipant(t.Context(), authUserID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, row.ID, p.ID)
	assert.True(t, p.IsAdmin)
	require.NotNil(t, p.AvatarKey)
	assert.Equal(t, "avatars/ada.png", *p.AvatarKey)

	p, err = app.ResolveParticipant(t.Context(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, p, "unknown auth users resolve to no participant")
}

func TestApp_ResolveParticipantPropagatesFailures(t *testing.T) {
	app := NewApp(NewRepository(&fakeQuerier{err: errors.New("connection refused")}))

	_, err := app.ResolveParticipant(t.Context(), uuid.New())
	assert.Error(t, err)
}

func TestApp_GetParticipantNotFound(t *testing.T) {
	app := NewApp(NewRepository(&fakeQuerier{}))

	_, err := app.GetParticipant(t.Context(), uuid.New())
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}
