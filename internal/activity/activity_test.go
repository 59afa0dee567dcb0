package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStampsEvent(t *testing.T) {
	e := New(TypeOrderPlaced, map[string]any{"items": 3})

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, TypeOrderPlaced, e.Type)
	assert.False(t, e.OccurredAt.IsZero())
	assert.NotEqual(t, e.ID, New(TypeOrderPlaced, nil).ID)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var p Publisher = &r

	_ = p.Publish(New(TypeSignedIn, nil))
	_ = p.Publish(New(TypeSignedOut, nil))

	assert.Equal(t, []string{TypeSignedIn, TypeSignedOut}, r.Types())
	assert.Len(t, r.Events(), 2)
	assert.NoError(t, Nop{}.Publish(New(TypeSignedIn, nil)))
}
