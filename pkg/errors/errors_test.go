package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base = base.WithDetails(map[string]string{"field": "foo"})
	if base.Details() == nil {
		t.Fatalf("expected details after WithDetails")
	}

	cause := stdErrors.New("underlying")
	wrapped := Wrap(CodeDependency, cause, "fetching records")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("expected wrapped error to unwrap to cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("expected dependency code, got %s", wrapped.Code())
	}
}

func TestAs(t *testing.T) {
	typed := New(CodeNotFound, "vendor missing")
	wrapped := Wrap(CodeInternal, typed, "outer")

	if As(nil) != nil {
		t.Fatalf("As(nil) should be nil")
	}
	if got := As(wrapped); got == nil || got.Code() != CodeInternal {
		t.Fatalf("expected outermost typed error")
	}
	if got := As(stdErrors.New("plain")); got != nil {
		t.Fatalf("plain errors should not convert")
	}
}

func TestDumpBuildsChain(t *testing.T) {
	cause := stdErrors.New("db down")
	err := Wrap(CodeDependency, cause, "list purchases")

	d := Dump(err)
	if d.Code != CodeDependency {
		t.Fatalf("expected dependency code in dump, got %s", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected chain of at least 2, got %d", len(d.Chain))
	}
}
