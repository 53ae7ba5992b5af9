package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	if meta := MetadataFor(CodeNotFound); meta.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404 for not found, got %d", meta.HTTPStatus)
	}
	if meta := MetadataFor(CodeValidation); meta.HTTPStatus != http.StatusBadRequest || !meta.DetailsAllowed {
		t.Fatalf("unexpected validation metadata: %+v", meta)
	}
	if meta := MetadataFor(Code("bogus")); meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown codes should map to internal, got %d", meta.HTTPStatus)
	}
}

func TestDependencyFailuresSurfaceAsInternal(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(CodeDependency)
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("storage failures must read as 500, got %d", meta.HTTPStatus)
	}
	if meta.DetailsAllowed {
		t.Fatal("dependency failures must not leak driver detail to clients")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "persist cart")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code: %s", err.Code())
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	t.Parallel()

	inner := New(CodeNotFound, "cart item not found")
	outer := fmt.Errorf("handling request: %w", inner)

	typed := As(outer)
	if typed == nil || typed.Code() != CodeNotFound {
		t.Fatalf("expected typed not-found error, got %v", typed)
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain errors should not match")
	}
}

func TestNewfFormatsMessage(t *testing.T) {
	t.Parallel()

	err := Newf(CodeValidation, "only %d additional units available", 3)
	if err.Message() != "only 3 additional units available" {
		t.Fatalf("unexpected message: %q", err.Message())
	}
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeInternal, stdErrors.New("disk full"), "write row")
	dump := Dump(err)
	if dump.Code != CodeInternal {
		t.Fatalf("unexpected code: %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected full chain, got %v", dump.Chain)
	}
}
