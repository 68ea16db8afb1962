package owner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOwnerVariants(t *testing.T) {
	id := uuid.New()

	u := User(id)
	assert.True(t, u.Valid())
	assert.Equal(t, KindUser, u.Kind())
	got, ok := u.UserID()
	assert.True(t, ok)
	assert.Equal(t, id, got)
	_, ok = u.SessionToken()
	assert.False(t, ok)

	s := Anonymous("session_1_abc")
	assert.True(t, s.Valid())
	token, ok := s.SessionToken()
	assert.True(t, ok)
	assert.Equal(t, "session_1_abc", token)
	_, ok = s.UserID()
	assert.False(t, ok)
	assert.Equal(t, "session:session_1_abc", s.String())
}

func TestOwnerZeroValueInvalid(t *testing.T) {
	var o Owner
	assert.False(t, o.Valid())
	assert.False(t, User(uuid.Nil).Valid())
	assert.False(t, Anonymous("").Valid())
	assert.Equal(t, "none", o.String())
}
