package logger

import (
	"strings"
	"testing"
)

func TestSanitizeRedactsContactValues(t *testing.T) {
	out := sanitizeKVs([]interface{}{"email", "john@example.com", "number", "5551234"})
	if out[1] != "[REDACTED]" {
		t.Fatalf("expected email value redacted, got %v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("expected number value redacted, got %v", out[3])
	}
}

func TestSanitizeHashesUserIDs(t *testing.T) {
	out := sanitizeKVs([]interface{}{"user_id", int64(7)})
	hashed, ok := out[1].(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") {
		t.Fatalf("expected hashed user id, got %v", out[1])
	}
}

func TestSanitizeLeavesPlainKeysAlone(t *testing.T) {
	out := sanitizeKVs([]interface{}{"first_name", "John"})
	if out[1] != "John" {
		t.Fatalf("expected value untouched, got %v", out[1])
	}
}
