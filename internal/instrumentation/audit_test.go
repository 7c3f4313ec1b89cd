package instrumentation

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestToolInvocation_Lifecycle(t *testing.T) {
	ti := NewToolInvocation("find_group_availability").
		WithRequester("jane@example.com").
		WithSearch("Europe/Berlin", 3)

	if ti.StartTime.IsZero() {
		t.Fatal("start time not set")
	}

	ti.Slots = 4
	ti.CompleteSuccess()
	if !ti.Success || ti.Status() != StatusSuccess {
		t.Errorf("expected success, got %s", ti.Status())
	}
	if ti.UserDomain() != "example.com" {
		t.Errorf("UserDomain = %q", ti.UserDomain())
	}

	failed := NewToolInvocation("query_busy_intervals").CompleteWithError(errors.New("invalid zone"))
	if failed.Success || failed.Status() != StatusError || failed.Error != "invalid zone" {
		t.Errorf("unexpected failed invocation: %+v", failed)
	}
}

func TestAuditLogger_Anonymized(t *testing.T) {
	logger, buf := newBufferLogger()
	al := NewAuditLogger(logger, AuditLoggingConfig{Enabled: true})

	ti := NewToolInvocation("find_group_availability").
		WithRequester("jane@example.com").
		WithSearch("UTC", 2).
		CompleteSuccess()
	al.LogToolInvocation(ti)

	entry := decode(t, buf)
	if entry["msg"] != "tool_executed" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["user_domain"] != "example.com" {
		t.Errorf("user_domain = %v", entry["user_domain"])
	}
	if _, ok := entry["user"]; ok {
		t.Error("full address must not be logged without PII opt-in")
	}
}

func TestAuditLogger_PII(t *testing.T) {
	logger, buf := newBufferLogger()
	al := NewAuditLogger(logger, AuditLoggingConfig{Enabled: true, IncludePII: true})

	al.LogToolInvocation(NewToolInvocation("find_group_availability").
		WithRequester("jane@example.com").
		CompleteWithError(errors.New("boom")))

	entry := decode(t, buf)
	if entry["msg"] != "tool_failed" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["user"] != "jane@example.com" {
		t.Errorf("user = %v", entry["user"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v", entry["error"])
	}
}

func TestAuditLogger_Disabled(t *testing.T) {
	logger, buf := newBufferLogger()
	NewAuditLogger(logger, AuditLoggingConfig{Enabled: false}).
		LogToolInvocation(NewToolInvocation("x").CompleteSuccess())

	if buf.Len() != 0 {
		t.Errorf("disabled audit logger wrote %q", buf.String())
	}

	var nilLogger *AuditLogger
	nilLogger.LogToolInvocation(NewToolInvocation("x").CompleteSuccess())
}
