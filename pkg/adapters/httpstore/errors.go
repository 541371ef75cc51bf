package httpstore

import "fmt"

// StatusError describes a failed store request. Message is the
// user-facing wording selected from the HTTP status; Err holds the
// underlying transport failure when there is one.
type StatusError struct {
	Action  string
	Code    int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("httpstore: %s failed: %v", e.Action, e.Err)
	}
	return fmt.Sprintf("httpstore: %s failed with status %d", e.Action, e.Code)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// messageFor selects the user-facing message for a failed action.
func messageFor(act action, code int) string {
	switch code {
	case 401:
		return fmt.Sprintf("Sorry, you are not allowed to %s this annotation.", verb(act))
	case 404:
		return "Sorry, we could not connect to the annotation store."
	case 500:
		return "Sorry, something went wrong with the annotation store."
	}
	if act == actionSearch {
		return "Sorry, we could not search the annotation store."
	}
	return fmt.Sprintf("Sorry, we could not %s this annotation.", verb(act))
}

// verb renders an action as the verb used in user-facing messages.
func verb(act action) string {
	if act == actionDestroy {
		return "delete"
	}
	return string(act)
}
