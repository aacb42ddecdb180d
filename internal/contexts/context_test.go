package contexts

import (
	"errors"
	"testing"

	"github.com/MagedNabil/graphQL/internal/store"
)

func TestWithUser(t *testing.T) {
	ctx := t.Context()
	user := &store.User{
		ID:        "u-1",
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "A",
	}

	newCtx := WithUser(ctx, user)
	if newCtx == ctx {
		t.Error("WithUser should return a new context")
	}

	retrieved, ok := GetUser(newCtx)
	if !ok {
		t.Error("GetUser should return true for existing user")
	}

	if retrieved == nil {
		t.Fatal("GetUser should return non-nil user")
	}

	if retrieved.ID != user.ID {
		t.Errorf("expected ID %s, got %s", user.ID, retrieved.ID)
	}

	if retrieved.Username != user.Username {
		t.Errorf("expected Username %s, got %s", user.Username, retrieved.Username)
	}
}

func TestGetUser(t *testing.T) {
	ctx := t.Context()

	user, ok := GetUser(ctx)
	if ok {
		t.Error("GetUser should return false for empty context")
	}

	if user != nil {
		t.Error("GetUser should return nil for empty context")
	}
}

func TestTraceAndRequestIDs(t *testing.T) {
	ctx := t.Context()

	if _, ok := GetTraceID(ctx); ok {
		t.Error("GetTraceID should return false for empty context")
	}

	ctx = WithTraceID(ctx, "at-trace-1")
	ctx = WithRequestID(ctx, "ar-req-1")

	traceID, ok := GetTraceID(ctx)
	if !ok || traceID != "at-trace-1" {
		t.Errorf("expected trace id at-trace-1, got %q (ok=%v)", traceID, ok)
	}

	requestID, ok := GetRequestID(ctx)
	if !ok || requestID != "ar-req-1" {
		t.Errorf("expected request id ar-req-1, got %q (ok=%v)", requestID, ok)
	}
}

func TestOperationName(t *testing.T) {
	ctx := WithOperationName(t.Context(), "loginUser")

	name, ok := GetOperationName(ctx)
	if !ok || name != "loginUser" {
		t.Errorf("expected operation name loginUser, got %q (ok=%v)", name, ok)
	}
}

func TestAddError(t *testing.T) {
	ctx := WithTraceID(t.Context(), "at-trace-1")

	if errs := GetErrors(ctx); len(errs) != 0 {
		t.Errorf("expected no errors, got %d", len(errs))
	}

	AddError(ctx, errors.New("boom"))
	AddError(ctx, nil)

	errs := GetErrors(ctx)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}

	if errs[0].Error() != "boom" {
		t.Errorf("expected boom, got %s", errs[0].Error())
	}
}
