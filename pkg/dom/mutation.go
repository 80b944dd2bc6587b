package dom

import "fmt"

// Op identifies a host call.
type Op uint8

const (
	OpCreateElement Op = iota + 1
	OpCreateText
	OpInsert
	OpRemove
	OpSetText
	OpAddClass
	OpRemoveClass
	OpSetStyle
	OpRemoveStyle
	OpSetAttr
	OpRemoveAttr
	OpSetData
	OpRemoveData
	OpAddListener
	OpRemoveListener
)

var opNames = map[Op]string{
	OpCreateElement:  "CreateElement",
	OpCreateText:     "CreateText",
	OpInsert:         "Insert",
	OpRemove:         "Remove",
	OpSetText:        "SetText",
	OpAddClass:       "AddClass",
	OpRemoveClass:    "RemoveClass",
	OpSetStyle:       "SetStyle",
	OpRemoveStyle:    "RemoveStyle",
	OpSetAttr:        "SetAttr",
	OpRemoveAttr:     "RemoveAttr",
	OpSetData:        "SetData",
	OpRemoveData:     "RemoveData",
	OpAddListener:    "AddListener",
	OpRemoveListener: "RemoveListener",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Mutation is one recorded host call. Node ids are document-scoped; zero
// means "none" (for Before, append).
//
// Field use by op:
//
//	CreateElement  Target, Value=tag
//	CreateText     Target, Value=text
//	Insert         Target, Parent, Before
//	Remove         Target
//	SetText        Target, Value
//	*Class         Target, Key=class
//	*Style         Target, Key=property, Value
//	*Attr, *Data   Target, Key, Value
//	*Listener      Target, Key=event
type Mutation struct {
	Op     Op
	Target uint32
	Parent uint32
	Before uint32
	Key    string
	Value  string
}

func (m Mutation) String() string {
	switch m.Op {
	case OpCreateElement, OpCreateText, OpSetText:
		return fmt.Sprintf("%s #%d %q", m.Op, m.Target, m.Value)
	case OpInsert:
		return fmt.Sprintf("%s #%d into #%d before #%d", m.Op, m.Target, m.Parent, m.Before)
	case OpRemove:
		return fmt.Sprintf("%s #%d", m.Op, m.Target)
	default:
		if m.Value != "" {
			return fmt.Sprintf("%s #%d %s=%q", m.Op, m.Target, m.Key, m.Value)
		}
		return fmt.Sprintf("%s #%d %s", m.Op, m.Target, m.Key)
	}
}
