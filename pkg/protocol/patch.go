package protocol

import (
	"errors"
	"fmt"

	"github.com/vango-dev/vtree/pkg/dom"
)

// PatchOp is the wire code of a patch.
type PatchOp uint8

const (
	PatchSetText       PatchOp = 0x01
	PatchSetAttr       PatchOp = 0x02
	PatchRemoveAttr    PatchOp = 0x03
	PatchInsertNode    PatchOp = 0x04
	PatchRemoveNode    PatchOp = 0x05
	PatchCreateElement PatchOp = 0x06
	PatchCreateText    PatchOp = 0x07
	PatchAddClass      PatchOp = 0x10
	PatchRemoveClass   PatchOp = 0x11
	PatchSetStyle      PatchOp = 0x13
	PatchRemoveStyle   PatchOp = 0x14
	PatchSetData       PatchOp = 0x15
	PatchRemoveData    PatchOp = 0x16
	PatchListen        PatchOp = 0x20
	PatchUnlisten      PatchOp = 0x21
)

var patchOpNames = map[PatchOp]string{
	PatchSetText:       "SetText",
	PatchSetAttr:       "SetAttr",
	PatchRemoveAttr:    "RemoveAttr",
	PatchInsertNode:    "InsertNode",
	PatchRemoveNode:    "RemoveNode",
	PatchCreateElement: "CreateElement",
	PatchCreateText:    "CreateText",
	PatchAddClass:      "AddClass",
	PatchRemoveClass:   "RemoveClass",
	PatchSetStyle:      "SetStyle",
	PatchRemoveStyle:   "RemoveStyle",
	PatchSetData:       "SetData",
	PatchRemoveData:    "RemoveData",
	PatchListen:        "Listen",
	PatchUnlisten:      "Unlisten",
}

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	if s, ok := patchOpNames[op]; ok {
		return s
	}
	return "Unknown"
}

// ErrUnknownPatchOp is returned when decoding an unassigned op code.
var ErrUnknownPatchOp = errors.New("protocol: unknown patch op")

var fromDomOp = map[dom.Op]PatchOp{
	dom.OpCreateElement:  PatchCreateElement,
	dom.OpCreateText:     PatchCreateText,
	dom.OpInsert:         PatchInsertNode,
	dom.OpRemove:         PatchRemoveNode,
	dom.OpSetText:        PatchSetText,
	dom.OpAddClass:       PatchAddClass,
	dom.OpRemoveClass:    PatchRemoveClass,
	dom.OpSetStyle:       PatchSetStyle,
	dom.OpRemoveStyle:    PatchRemoveStyle,
	dom.OpSetAttr:        PatchSetAttr,
	dom.OpRemoveAttr:     PatchRemoveAttr,
	dom.OpSetData:        PatchSetData,
	dom.OpRemoveData:     PatchRemoveData,
	dom.OpAddListener:    PatchListen,
	dom.OpRemoveListener: PatchUnlisten,
}

// Patch is one DOM operation addressed by node id.
type Patch struct {
	Op     PatchOp
	Target uint32
	Parent uint32 // InsertNode
	Before uint32 // InsertNode; 0 appends
	Key    string // attribute, class, style property, data key or event
	Value  string
}

// PatchFromMutation converts a recorded document mutation.
func PatchFromMutation(m dom.Mutation) (Patch, error) {
	op, ok := fromDomOp[m.Op]
	if !ok {
		return Patch{}, fmt.Errorf("%w: mutation %s", ErrUnknownPatchOp, m.Op)
	}
	return Patch{
		Op:     op,
		Target: m.Target,
		Parent: m.Parent,
		Before: m.Before,
		Key:    m.Key,
		Value:  m.Value,
	}, nil
}

// PatchesFromMutations converts a mutation log in order.
func PatchesFromMutations(ms []dom.Mutation) ([]Patch, error) {
	out := make([]Patch, 0, len(ms))
	for _, m := range ms {
		p, err := PatchFromMutation(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// PatchesFrame is a batch of patches with a sequence number.
type PatchesFrame struct {
	Seq     uint64
	Patches []Patch
}

// EncodePatches encodes a patches frame payload.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, pf)
	return e.Bytes()
}

// EncodePatchesTo encodes a patches frame payload using e.
func EncodePatchesTo(e *Encoder, pf *PatchesFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))
	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
}

func encodePatch(e *Encoder, p *Patch) {
	e.WriteByte(byte(p.Op))
	e.WriteUvarint(uint64(p.Target))

	switch p.Op {
	case PatchCreateElement, PatchCreateText, PatchSetText:
		e.WriteString(p.Value)

	case PatchInsertNode:
		e.WriteUvarint(uint64(p.Parent))
		e.WriteUvarint(uint64(p.Before))

	case PatchRemoveNode:
		// Target is enough.

	case PatchSetAttr, PatchSetStyle, PatchSetData:
		e.WriteString(p.Key)
		e.WriteString(p.Value)

	case PatchRemoveAttr, PatchRemoveStyle, PatchRemoveData,
		PatchAddClass, PatchRemoveClass, PatchListen, PatchUnlisten:
		e.WriteString(p.Key)
	}
}

// DecodePatches decodes a patches frame payload.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	d := NewDecoder(data)
	pf, err := DecodePatchesFrom(d)
	if err != nil {
		return nil, err
	}
	return pf, d.finish()
}

// DecodePatchesFrom decodes a patches frame payload from d.
func DecodePatchesFrom(d *Decoder) (*PatchesFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	pf := &PatchesFrame{Seq: seq, Patches: make([]Patch, count)}
	for i := range pf.Patches {
		if err := decodePatch(d, &pf.Patches[i]); err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
	}
	return pf, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	op, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = PatchOp(op)
	if p.Target, err = d.ReadID(); err != nil {
		return err
	}

	switch p.Op {
	case PatchCreateElement, PatchCreateText, PatchSetText:
		p.Value, err = d.ReadString()

	case PatchInsertNode:
		if p.Parent, err = d.ReadID(); err != nil {
			return err
		}
		p.Before, err = d.ReadID()

	case PatchRemoveNode:

	case PatchSetAttr, PatchSetStyle, PatchSetData:
		if p.Key, err = d.ReadString(); err != nil {
			return err
		}
		p.Value, err = d.ReadString()

	case PatchRemoveAttr, PatchRemoveStyle, PatchRemoveData,
		PatchAddClass, PatchRemoveClass, PatchListen, PatchUnlisten:
		p.Key, err = d.ReadString()

	default:
		return fmt.Errorf("%w: 0x%02x", ErrUnknownPatchOp, op)
	}
	return err
}
