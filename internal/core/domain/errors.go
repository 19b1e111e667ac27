package domain

import "errors"

// Kind classifies a failed recommendation request.
type Kind int

const (
	// KindBadRequest covers unreadable bodies and missing required fields.
	KindBadRequest Kind = iota + 1
	// KindUpstream covers provider failures and unusable model replies.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

var (
	// ErrNoQuery is returned by the search variant when the query is empty.
	ErrNoQuery = errors.New("No query provided") //nolint:staticcheck // surfaced verbatim to API clients
	// ErrNoJSONArray indicates the model reply had no usable bracket pair.
	ErrNoJSONArray = errors.New("no JSON array found in completion reply")
)

// Error carries a Kind alongside the underlying cause. Its message is the
// cause's message so clients see it unchanged.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest wraps err as a KindBadRequest error.
func BadRequest(err error) error {
	return &Error{Kind: KindBadRequest, Err: err}
}

// Upstream wraps err as a KindUpstream error.
func Upstream(err error) error {
	return &Error{Kind: KindUpstream, Err: err}
}

// KindOf reports the Kind of err, defaulting to KindUpstream for
// unclassified errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUpstream
}
