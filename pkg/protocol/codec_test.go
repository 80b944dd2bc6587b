package protocol

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestUvarint(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16383, 16384, math.MaxUint32, math.MaxUint64}
	for _, v := range values {
		e := NewEncoder()
		e.WriteUvarint(v)
		if e.Len() != UvarintLen(v) {
			t.Errorf("UvarintLen(%d) = %d, encoded %d", v, UvarintLen(v), e.Len())
		}
		got, err := NewDecoder(e.Bytes()).ReadUvarint()
		if err != nil || got != v {
			t.Errorf("ReadUvarint = %d, %v; want %d", got, err, v)
		}
	}
}

func TestReadUvarintOverflow(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	if _, err := NewDecoder(data).ReadUvarint(); !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("err = %v", err)
	}
}

func TestReadIDOverflow(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(math.MaxUint32 + 1)
	if _, err := NewDecoder(e.Bytes()).ReadID(); !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("err = %v", err)
	}
}

func TestReadString(t *testing.T) {
	e := NewEncoder()
	e.WriteString("")
	e.WriteString("héllo")
	d := NewDecoder(e.Bytes())
	for _, want := range []string{"", "héllo"} {
		got, err := d.ReadString()
		if err != nil || got != want {
			t.Errorf("ReadString = %q, %v; want %q", got, err, want)
		}
	}
	if !d.EOF() {
		t.Error("expected EOF")
	}
}

func TestReadStringTruncated(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(10)
	e.WriteByte('a')
	if _, err := NewDecoder(e.Bytes()).ReadString(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("err = %v", err)
	}
}

func TestReadCollectionCountLimits(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxCollectionCount + 1)
	if _, err := NewDecoder(e.Bytes()).ReadCollectionCount(); !errors.Is(err, ErrCollectionTooLarge) {
		t.Errorf("over limit: err = %v", err)
	}

	e.Reset()
	e.WriteUvarint(5)
	e.WriteByte(0)
	if _, err := NewDecoder(e.Bytes()).ReadCollectionCount(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("over remaining: err = %v", err)
	}
}

func TestUint32(t *testing.T) {
	e := NewEncoder()
	e.WriteUint32(0xDEADBEEF)
	got, err := NewDecoder(e.Bytes()).ReadUint32()
	if err != nil || got != 0xDEADBEEF {
		t.Errorf("ReadUint32 = %x, %v", got, err)
	}
}
