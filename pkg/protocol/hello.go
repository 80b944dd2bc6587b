package protocol

// Version is the protocol version announced in Hello.
const Version = 1

// Hello is the first frame a server sends on a new session. Root is the
// node id of the document body; every later patch is relative to it.
type Hello struct {
	Version   uint8
	SessionID string
	Root      uint32
}

// EncodeHello encodes a hello payload.
func EncodeHello(h *Hello) []byte {
	e := NewEncoder()
	e.WriteByte(h.Version)
	e.WriteString(h.SessionID)
	e.WriteUvarint(uint64(h.Root))
	return e.Bytes()
}

// DecodeHello decodes a hello payload.
func DecodeHello(data []byte) (*Hello, error) {
	d := NewDecoder(data)
	var h Hello
	var err error
	if h.Version, err = d.ReadByte(); err != nil {
		return nil, err
	}
	if h.SessionID, err = d.ReadString(); err != nil {
		return nil, err
	}
	if h.Root, err = d.ReadID(); err != nil {
		return nil, err
	}
	return &h, d.finish()
}
