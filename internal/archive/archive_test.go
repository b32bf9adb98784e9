package archive

import (
	"strings"
	"testing"
)

func TestSaveRevisionInitializesRepo(t *testing.T) {
	svc := New(t.TempDir())

	rev, err := svc.SaveRevision("doc-1", "# Hello\n", "Ada Lovelace", "Initial generation")
	if err != nil {
		t.Fatalf("SaveRevision failed: %v", err)
	}
	if rev.Hash == "" {
		t.Error("expected revision hash")
	}
	if rev.Author != "Ada Lovelace" {
		t.Errorf("author = %q", rev.Author)
	}
	if !strings.Contains(rev.Message, "Initial generation") {
		t.Errorf("message = %q", rev.Message)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	svc := New(t.TempDir())

	if _, err := svc.SaveRevision("doc-1", "v1", "user", "first"); err != nil {
		t.Fatalf("SaveRevision 1 failed: %v", err)
	}
	if _, err := svc.SaveRevision("doc-1", "v2", "user", "second"); err != nil {
		t.Fatalf("SaveRevision 2 failed: %v", err)
	}
	if _, err := svc.SaveRevision("doc-1", "v3", "user", "third"); err != nil {
		t.Fatalf("SaveRevision 3 failed: %v", err)
	}

	history, err := svc.History("doc-1", 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 revisions, got %d", len(history))
	}
	if !strings.Contains(history[0].Message, "third") {
		t.Errorf("expected newest first, got %q", history[0].Message)
	}
	if !strings.Contains(history[2].Message, "first") {
		t.Errorf("expected oldest last, got %q", history[2].Message)
	}
}

func TestHistoryLimit(t *testing.T) {
	svc := New(t.TempDir())

	for _, msg := range []string{"a", "b", "c", "d"} {
		if _, err := svc.SaveRevision("doc-1", msg, "user", msg); err != nil {
			t.Fatalf("SaveRevision failed: %v", err)
		}
	}

	history, err := svc.History("doc-1", 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("expected limit of 2, got %d", len(history))
	}
}

func TestRevisionRoundTrip(t *testing.T) {
	svc := New(t.TempDir())

	first, err := svc.SaveRevision("doc-1", "# Draft one\n", "user", "first")
	if err != nil {
		t.Fatalf("SaveRevision failed: %v", err)
	}
	if _, err := svc.SaveRevision("doc-1", "# Draft two\n", "user", "second"); err != nil {
		t.Fatalf("SaveRevision failed: %v", err)
	}

	content, info, err := svc.Revision("doc-1", first.Hash)
	if err != nil {
		t.Fatalf("Revision failed: %v", err)
	}
	if content != "# Draft one\n" {
		t.Errorf("content = %q", content)
	}
	if info.Hash != first.Hash {
		t.Errorf("hash = %q, want %q", info.Hash, first.Hash)
	}
}

func TestHistoryUnknownDocument(t *testing.T) {
	svc := New(t.TempDir())

	if _, err := svc.History("missing", 0); err == nil {
		t.Error("expected error for unknown document")
	}
}

func TestDocumentIsolation(t *testing.T) {
	svc := New(t.TempDir())

	if _, err := svc.SaveRevision("doc-1", "one", "user", "doc one"); err != nil {
		t.Fatalf("SaveRevision failed: %v", err)
	}
	if _, err := svc.SaveRevision("doc-2", "two", "user", "doc two"); err != nil {
		t.Fatalf("SaveRevision failed: %v", err)
	}

	history, err := svc.History("doc-1", 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected 1 revision for doc-1, got %d", len(history))
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Ada Lovelace", "Ada.Lovelace"},
		{"user@example.com", "userexamplecom"},
		{"", "user"},
		{"!!!", "user"},
	}
	for _, tt := range tests {
		if got := sanitizeEmail(tt.input); got != tt.expected {
			t.Errorf("sanitizeEmail(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
