// Package owner models the identity a cart belongs to: an authenticated user
// or an anonymous session token, never both.
package owner

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNoOwner = errors.New("no cart owner resolved")

type Kind uint8

const (
	KindUser Kind = iota + 1
	KindSession
)

// Owner is a tagged variant. The zero value is invalid.
type Owner struct {
	kind    Kind
	userID  uuid.UUID
	session string
}

func User(id uuid.UUID) Owner {
	return Owner{kind: KindUser, userID: id}
}

func Anonymous(token string) Owner {
	return Owner{kind: KindSession, session: token}
}

func (o Owner) Kind() Kind { return o.kind }

func (o Owner) Valid() bool {
	switch o.kind {
	case KindUser:
		return o.userID != uuid.Nil
	case KindSession:
		return o.session != ""
	}
	return false
}

func (o Owner) UserID() (uuid.UUID, bool) {
	return o.userID, o.kind == KindUser
}

func (o Owner) SessionToken() (string, bool) {
	return o.session, o.kind == KindSession
}

func (o Owner) String() string {
	switch o.kind {
	case KindUser:
		return "user:" + o.userID.String()
	case KindSession:
		return "session:" + o.session
	}
	return "none"
}
