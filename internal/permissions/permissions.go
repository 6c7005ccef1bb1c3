package permissions

import "errors"

// Action identifies what a request is trying to do to a resource.
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// isWrite reports whether the action mutates state.
func (a Action) isWrite() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Subject is the authenticated identity behind a request. A nil *Subject means
// the request is anonymous. It is always passed explicitly; this package never
// reads request state.
type Subject struct {
	ID       string
	Username string
}

var (
	// ErrAuthenticationRequired signals a write attempted without credentials.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrForbidden signals a write by an authenticated subject who does not own
	// the resource.
	ErrForbidden = errors.New("forbidden")
)

// AuthenticatedOrReadOnly allows reads for any subject and writes only for
// authenticated ones.
func AuthenticatedOrReadOnly(sub *Subject, action Action) error {
	if !action.isWrite() {
		return nil
	}
	if sub == nil {
		return ErrAuthenticationRequired
	}
	return nil
}

// OwnerOrReadOnly layers an ownership check on top of AuthenticatedOrReadOnly:
// writes additionally require the subject to own the resource. The
// authentication check runs first so an anonymous write reports
// ErrAuthenticationRequired, not ErrForbidden.
func OwnerOrReadOnly(sub *Subject, action Action, ownerID string) error {
	if err := AuthenticatedOrReadOnly(sub, action); err != nil {
		return err
	}
	if !action.isWrite() {
		return nil
	}
	if sub.ID != ownerID {
		return ErrForbidden
	}
	return nil
}

// UserOwnerOrReadAndCreate is the user-record variant: reads are open, create
// is open (registration), and update/delete require the subject to be the user
// in question.
func UserOwnerOrReadAndCreate(sub *Subject, action Action, userID string) error {
	if action == ActionCreate || !action.isWrite() {
		return nil
	}
	if sub == nil {
		return ErrAuthenticationRequired
	}
	if sub.ID != userID {
		return ErrForbidden
	}
	return nil
}
