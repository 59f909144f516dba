package errors

import (
	"bytes"
	stderrors "errors"
	"io"
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
			name:    "protocol error",
			code:    "E201",
			wantMsg: "Malformed event frame",
			wantCat: CategoryProtocol,
		},
		{
			name:    "config error",
			code:    "E301",
			wantMsg: "Config file not found",
			wantCat: CategoryConfig,
		},
		{
			name:    "cli error",
			code:    "E402",
			wantMsg: "Invalid interaction",
			wantCat: CategoryCLI,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("E303").WithDetail("port must be between 1 and 65535, got 0")
	want := "E303: Invalid config value: port must be between 1 and 65535, got 0"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if got := Newf(CategoryRuntime, "%d listeners leaked", 2).Error(); got != "2 listeners leaked" {
		t.Errorf("Newf().Error() = %q", got)
	}
}

func TestIsAndUnwrap(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := New("E201").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !stderrors.Is(err, New("E201")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(err, New("E202")) {
		t.Error("errors.Is should not match a different code")
	}

	var ce *Error
	if !stderrors.As(err, &ce) || ce.Code != "E201" {
		t.Errorf("errors.As() = %v", ce)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E201") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E401")
	if FromError(orig, "E201") != orig {
		t.Error("FromError should return *Error unchanged")
	}

	wrapped := FromError(io.EOF, "E201")
	if wrapped.Code != "E201" || wrapped.Wrapped != io.EOF {
		t.Errorf("FromError(io.EOF) = %+v", wrapped)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()

	err := New("E401").
		WithSuggestion(`no element matches "#missing"`).
		Wrap(stderrors.New("lookup failed"))

	out := err.Format()
	for _, want := range []string{
		"ERROR E401: Unknown event target",
		"The interaction target matches no element",
		"Cause: lookup failed",
		`Hint: no element matches "#missing"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()

	var buf bytes.Buffer
	PrintError(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("PrintError(plain) = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, New("E302"))
	if !strings.Contains(buf.String(), "ERROR E302: Invalid config file") {
		t.Errorf("PrintError(coded) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	if len(lines) < 2 {
		t.Fatalf("wrapText() = %v, want several lines", lines)
	}
	for _, line := range lines {
		if len(line) > 20 {
			t.Errorf("line %q longer than 20", line)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}

func TestRegistryCategories(t *testing.T) {
	for code, tmpl := range registry {
		if tmpl.Message == "" {
			t.Errorf("%s has no message", code)
		}
		switch {
		case strings.HasPrefix(code, "E2"):
			if tmpl.Category != CategoryProtocol {
				t.Errorf("%s category = %q, want protocol", code, tmpl.Category)
			}
		case strings.HasPrefix(code, "E3"):
			if tmpl.Category != CategoryConfig {
				t.Errorf("%s category = %q, want config", code, tmpl.Category)
			}
		case strings.HasPrefix(code, "E4"):
			if tmpl.Category != CategoryCLI {
				t.Errorf("%s category = %q, want cli", code, tmpl.Category)
			}
		}
	}
}
