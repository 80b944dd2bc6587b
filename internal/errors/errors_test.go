package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "engine error",
			code:    "V002",
			wantMsg: "Mixed keyed and unkeyed children",
			wantCat: CategoryEngine,
		},
		{
			name:    "config error",
			code:    "C001",
			wantMsg: "Invalid configuration file",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "V999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("V003")
	if got, want := err.Error(), "V003: Node is not linked to an output artifact"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := New("C001").Wrap(fmt.Errorf("open vtree.json: permission denied"))
	if !strings.HasSuffix(wrapped.Error(), ": open vtree.json: permission denied") {
		t.Errorf("Error() = %q, want cause appended", wrapped.Error())
	}

	plain := &Error{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestUnwrap(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := New("V002").Wrap(sentinel)
	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should see the wrapped sentinel")
	}

	var ve *Error
	if !stderrors.As(fmt.Errorf("outer: %w", err), &ve) {
		t.Fatal("errors.As should find *Error")
	}
	if ve.Code != "V002" {
		t.Errorf("Code = %q, want V002", ve.Code)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "V001") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("V005")
	if FromError(orig, "V001") != orig {
		t.Error("FromError should pass *Error through unchanged")
	}

	wrapped := FromError(stderrors.New("boom"), "V007")
	if wrapped.Code != "V007" || wrapped.Wrapped == nil {
		t.Errorf("FromError = %+v", wrapped)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("V002").
		WithDetail("parent <ul> mixes keys").
		WithSuggestion("key every item")
	out := err.Format()

	for _, want := range []string{"ERROR V002: Mixed keyed and unkeyed children", "parent <ul> mixes keys", "Hint: key every item"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}

	if got := err.FormatCompact(); got != "V002: Mixed keyed and unkeyed children (parent <ul> mixes keys)" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, fmt.Errorf("render: %w", New("V001")))
	if !strings.Contains(buf.String(), "ERROR V001") {
		t.Errorf("Fprint wrapped = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("Fprint plain = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 40), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q longer than 20", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should wrap to nil")
	}
}

func TestRegistryCodesHaveMessages(t *testing.T) {
	for _, code := range GetAllCodes() {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("code %s has incomplete template: %+v", code, tmpl)
		}
	}
}
