package vdom

import (
	"fmt"
	"maps"
)

// Create builds a node descriptor.
//
// target is either an element tag (string) or a *ComponentType. Children may
// be *Node, strings, numbers, fmt.Stringer, []*Node or []any (flattened);
// nil and bool children are dropped so conditional rendering can be written
// inline. Create never touches a Host.
func Create(target any, key string, props Props, children ...any) (*Node, error) {
	kids, err := normalizeChildren(nil, children)
	if err != nil {
		return nil, err
	}
	if key == "" {
		if k, ok := props["key"]; ok && k != nil {
			key = propToString(k)
		}
	}

	switch t := target.(type) {
	case string:
		if t == "" {
			return nil, newError(ErrInvalidNodeType, "empty element tag")
		}
		attrs, err := normalizeTagProps(props)
		if err != nil {
			return nil, err
		}
		return &Node{
			Kind:     KindElement,
			Key:      key,
			Tag:      t,
			Attrs:    attrs,
			Children: kids,
		}, nil

	case *ComponentType:
		if t == nil || t.New == nil {
			return nil, newError(ErrInvalidNodeType, "component type has no constructor")
		}
		p := maps.Clone(props)
		if p == nil {
			p = Props{}
		}
		delete(p, "key")
		p["children"] = kids
		return &Node{
			Kind:  KindComponent,
			Key:   key,
			Type:  t,
			Props: p,
		}, nil

	default:
		return nil, newError(ErrInvalidNodeType, "unsupported target %T", target)
	}
}

// H is Create for static trees; it panics on error.
func H(target any, props Props, children ...any) *Node {
	n, err := Create(target, "", props, children...)
	if err != nil {
		panic(err)
	}
	return n
}

// Text creates a text node.
func Text(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

// Keyed sets the key on n and returns it, for use inside H calls.
func Keyed(key string, n *Node) *Node {
	n.Key = key
	return n
}

func normalizeChildren(out []*Node, children []any) ([]*Node, error) {
	for _, c := range children {
		switch v := c.(type) {
		case nil, bool:
			continue
		case *Node:
			if v != nil {
				out = append(out, v)
			}
		case []*Node:
			for _, n := range v {
				if n != nil {
					out = append(out, n)
				}
			}
		case []any:
			var err error
			if out, err = normalizeChildren(out, v); err != nil {
				return nil, err
			}
		case string:
			out = append(out, Text(v))
		case fmt.Stringer:
			out = append(out, Text(v.String()))
		default:
			s, ok := numberString(c)
			if !ok {
				return nil, newError(ErrInvalidNodeType, "unsupported child %T", c)
			}
			out = append(out, Text(s))
		}
	}
	return out, nil
}
