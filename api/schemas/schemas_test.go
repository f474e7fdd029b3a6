// File: api/schemas/schemas_test.go
package schemas

import (
	"testing"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freezeEnvelope(t *testing.T) time.Time {
	t.Helper()
	fixed := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	newID = func() string { return "fixed-id" }
	now = func() time.Time { return fixed }
	t.Cleanup(func() {
		newID = uuid.NewString
		now = time.Now
	})
	return fixed
}

func TestNewEnvelope(t *testing.T) {
	fixed := freezeEnvelope(t)

	env := NewEnvelope("perception", MessageScan)

	assert.Equal(t, "fixed-id", env.ID)
	assert.Equal(t, fixed, env.Timestamp)
	assert.Equal(t, "perception", env.Agent)
	assert.Equal(t, MessageScan, env.Type)
	assert.Equal(t, StatusSuccess, env.Status)
	assert.True(t, env.OK())
	assert.Empty(t, env.Code)
	assert.Empty(t, env.Error)
}

func TestNewErrorEnvelope(t *testing.T) {
	freezeEnvelope(t)

	env := NewErrorEnvelope("intent", MessageIntent, CodeTimeout, "no speech detected")

	assert.Equal(t, StatusError, env.Status)
	assert.Equal(t, CodeTimeout, env.Code)
	assert.Equal(t, "no speech detected", env.Error)
	assert.False(t, env.OK())
}

func TestEnvelopeIDsAreUnique(t *testing.T) {
	a := NewEnvelope("actuation", MessageAction)
	b := NewEnvelope("actuation", MessageAction)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestEnvelopeJSONOmitsEmptyErrorFields(t *testing.T) {
	env := NewEnvelope("learning", MessageReport)

	out, err := jsoniter.Marshal(env)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"code"`)
	assert.NotContains(t, string(out), `"error"`)

	bad := NewErrorEnvelope("learning", MessageReport, CodeNotFound, "missing")
	out, err = jsoniter.Marshal(bad)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"code":"not_found"`)
}

func TestNewBoundingBoxDerivesGeometry(t *testing.T) {
	box := NewBoundingBox(100, 120, 220, 360)

	assert.Equal(t, 160, box.CenterX)
	assert.Equal(t, 240, box.CenterY)
	assert.Equal(t, 120, box.Width)
	assert.Equal(t, 240, box.Height)
	assert.Equal(t, 28800, box.Area())
}
