package protocol

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidEvent is returned for malformed event payloads.
var ErrInvalidEvent = errors.New("protocol: invalid event")

// Event is a DOM event reported by the client for a node id.
//
// Wire format:
//
//	[Seq: varint][Target: varint][Type: string][Value: string]
//	[DetailCount: varint]([Key: string][Value: string])*
type Event struct {
	Seq    uint64
	Target uint32
	Type   string            // DOM event name, e.g. "click"
	Value  string            // input value for input/change events
	Detail map[string]string // extra fields (key, button, ...)
}

// EncodeEvent encodes an event payload.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoder()
	EncodeEventTo(e, ev)
	return e.Bytes()
}

// EncodeEventTo encodes an event payload using e. Detail keys are written
// sorted so equal events encode identically.
func EncodeEventTo(e *Encoder, ev *Event) {
	e.WriteUvarint(ev.Seq)
	e.WriteUvarint(uint64(ev.Target))
	e.WriteString(ev.Type)
	e.WriteString(ev.Value)

	keys := make([]string, 0, len(ev.Detail))
	for k := range ev.Detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	e.WriteUvarint(uint64(len(keys)))
	for _, k := range keys {
		e.WriteString(k)
		e.WriteString(ev.Detail[k])
	}
}

// DecodeEvent decodes an event payload.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	ev, err := decodeEvent(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	if err := d.finish(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	return ev, nil
}

func decodeEvent(d *Decoder) (*Event, error) {
	var ev Event
	var err error
	if ev.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if ev.Target, err = d.ReadID(); err != nil {
		return nil, err
	}
	if ev.Type, err = d.ReadString(); err != nil {
		return nil, err
	}
	if ev.Type == "" {
		return nil, errors.New("empty event type")
	}
	if ev.Value, err = d.ReadString(); err != nil {
		return nil, err
	}

	n, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return &ev, nil
	}
	// Each entry needs at least two length bytes.
	if n > MaxCollectionCount || n*2 > uint64(d.Remaining()) {
		return nil, ErrCollectionTooLarge
	}
	ev.Detail = make(map[string]string, n)
	for i := uint64(0); i < n; i++ {
		k, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		v, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		ev.Detail[k] = v
	}
	return &ev, nil
}
