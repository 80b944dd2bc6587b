package protocol

import (
	"errors"
	"fmt"

	verrors "github.com/vango-dev/vtree/internal/errors"
)

// ErrorMessage is the payload of an Error frame. Code is a registry code
// such as "V070".
type ErrorMessage struct {
	Code    string
	Message string
	Fatal   bool // the sender closes the session after this frame
}

func (e *ErrorMessage) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewErrorMessage builds an error payload from any error. Coded errors
// keep their code; others are reported as V070.
func NewErrorMessage(err error, fatal bool) *ErrorMessage {
	var ve *verrors.Error
	if errors.As(err, &ve) && ve.Code != "" {
		return &ErrorMessage{Code: ve.Code, Message: ve.Error(), Fatal: fatal}
	}
	return &ErrorMessage{Code: "V070", Message: err.Error(), Fatal: fatal}
}

// EncodeErrorMessage encodes an error payload.
func EncodeErrorMessage(m *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteString(m.Code)
	e.WriteString(m.Message)
	if m.Fatal {
		e.WriteByte(1)
	} else {
		e.WriteByte(0)
	}
	return e.Bytes()
}

// DecodeErrorMessage decodes an error payload.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	var m ErrorMessage
	var err error
	if m.Code, err = d.ReadString(); err != nil {
		return nil, err
	}
	if m.Message, err = d.ReadString(); err != nil {
		return nil, err
	}
	b, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	m.Fatal = b != 0
	return &m, d.finish()
}
