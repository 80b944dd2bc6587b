package vdom

import (
	"errors"
	"fmt"

	verrors "github.com/vango-dev/vtree/internal/errors"
)

// Sentinel errors. Errors returned by the engine wrap one of these inside a
// coded *errors.Error, so errors.Is keeps working.
var (
	ErrInvalidNodeType = errors.New("vdom: invalid node type")
	ErrMixedKeying     = errors.New("vdom: mixed keyed and unkeyed children")
	ErrUnlinkedNode    = errors.New("vdom: node not linked to an output artifact")
	ErrDuplicateKey    = errors.New("vdom: duplicate key")
	ErrInvalidHandler  = errors.New("vdom: invalid event handler")
	ErrRenderFailed    = errors.New("vdom: component render failed")
	ErrAlreadyMounted  = errors.New("vdom: node already mounted")
	ErrNotMounted      = errors.New("vdom: component not mounted")
)

// errCodes maps sentinels to registry codes.
var errCodes = map[error]string{
	ErrInvalidNodeType: "V001",
	ErrMixedKeying:     "V002",
	ErrUnlinkedNode:    "V003",
	ErrDuplicateKey:    "V005",
	ErrInvalidHandler:  "V006",
	ErrRenderFailed:    "V007",
	ErrAlreadyMounted:  "V008",
	ErrNotMounted:      "V050",
}

// newError builds a coded error wrapping sentinel.
func newError(sentinel error, format string, args ...any) error {
	return verrors.New(errCodes[sentinel]).
		WithDetail(fmt.Sprintf(format, args...)).
		Wrap(sentinel)
}

// describe renders a short label for a node in error details and logs.
func describe(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	var s string
	switch n.Kind {
	case KindText:
		s = fmt.Sprintf("text %q", n.Text)
	case KindElement:
		s = "<" + n.Tag + ">"
	case KindComponent:
		s = "component " + n.Type.String()
	default:
		s = n.Kind.String()
	}
	if n.Key != "" {
		s += " key=" + n.Key
	}
	return s
}
