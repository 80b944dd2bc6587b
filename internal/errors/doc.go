// Package errors provides structured, coded errors for vtree.
//
// Every error the engine surfaces to application code carries a stable code
// (e.g. "V002") that maps to:
//   - a category (engine, state, config, protocol, cli)
//   - a short message
//   - a longer explanation
//
// The package-level sentinels exported by pkg/vdom are wrapped inside an
// *Error, so callers can keep using errors.Is:
//
//	err := rc.Update(old, next)
//	if errors.Is(err, vdom.ErrMixedKeying) {
//	    ...
//	}
//
// # Usage
//
//	err := errors.New("V002").
//	    WithDetail("parent <ul> has 3 keyed and 1 unkeyed children").
//	    WithSuggestion("Give every item rendered in a list a key")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR V002: Mixed keyed and unkeyed children
//	//
//	//   parent <ul> has 3 keyed and 1 unkeyed children
//	//
//	//   Hint: Give every item rendered in a list a key
package errors
