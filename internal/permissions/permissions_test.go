package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthenticatedOrReadOnly(t *testing.T) {
	sub := &Subject{ID: "u1", Username: "bozo"}

	for _, tc := range []struct {
		name    string
		sub     *Subject
		action  Action
		wantErr error
	}{
		{"anonymous list", nil, ActionList, nil},
		{"anonymous retrieve", nil, ActionRetrieve, nil},
		{"anonymous create", nil, ActionCreate, ErrAuthenticationRequired},
		{"anonymous update", nil, ActionUpdate, ErrAuthenticationRequired},
		{"anonymous delete", nil, ActionDelete, ErrAuthenticationRequired},
		{"authenticated create", sub, ActionCreate, nil},
		{"authenticated delete", sub, ActionDelete, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, AuthenticatedOrReadOnly(tc.sub, tc.action), tc.wantErr)
		})
	}
}

func TestOwnerOrReadOnly(t *testing.T) {
	owner := &Subject{ID: "u1", Username: "bozo"}
	other := &Subject{ID: "u2", Username: "novi"}

	for _, tc := range []struct {
		name    string
		sub     *Subject
		action  Action
		wantErr error
	}{
		{"anonymous retrieve", nil, ActionRetrieve, nil},
		{"other retrieve", other, ActionRetrieve, nil},
		{"owner update", owner, ActionUpdate, nil},
		{"owner delete", owner, ActionDelete, nil},
		{"other update", other, ActionUpdate, ErrForbidden},
		{"other delete", other, ActionDelete, ErrForbidden},
		// The authentication check must win over the ownership check.
		{"anonymous update", nil, ActionUpdate, ErrAuthenticationRequired},
		{"anonymous delete", nil, ActionDelete, ErrAuthenticationRequired},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, OwnerOrReadOnly(tc.sub, tc.action, owner.ID), tc.wantErr)
		})
	}
}

func TestUserOwnerOrReadAndCreate(t *testing.T) {
	owner := &Subject{ID: "u1", Username: "bozo"}
	other := &Subject{ID: "u2", Username: "novi"}

	for _, tc := range []struct {
		name    string
		sub     *Subject
		action  Action
		wantErr error
	}{
		{"anonymous list", nil, ActionList, nil},
		{"anonymous retrieve", nil, ActionRetrieve, nil},
		// Registration is open to anonymous subjects.
		{"anonymous create", nil, ActionCreate, nil},
		{"owner update", owner, ActionUpdate, nil},
		{"owner delete", owner, ActionDelete, nil},
		{"other update", other, ActionUpdate, ErrForbidden},
		{"other delete", other, ActionDelete, ErrForbidden},
		{"anonymous update", nil, ActionUpdate, ErrAuthenticationRequired},
		{"anonymous delete", nil, ActionDelete, ErrAuthenticationRequired},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, UserOwnerOrReadAndCreate(tc.sub, tc.action, owner.ID), tc.wantErr)
		})
	}
}
