package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opencapitol/gavel/internal/pipeline"
)

// mockParser implements Parser.
type mockParser struct {
	failID string
}

func (m *mockParser) ParseHearing(ctx context.Context, id string) (*pipeline.Result, error) {
	time.Sleep(5 * time.Millisecond) // simulate work
	if id == m.failID {
		return nil, errors.New("parse error")
	}
	return &pipeline.Result{ID: id}, nil
}

func TestBatchProcessor_ProcessIDs(t *testing.T) {
	processor := NewBatchProcessor(&mockParser{}, 2)

	ids := []string{"CHRG-113jhrg10001", "CHRG-113jhrg10002", "CHRG-113jhrg10003"}
	results := processor.ProcessIDs(context.Background(), ids)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for _, res := range results {
		if res.Err() != nil {
			t.Errorf("unexpected error for %s: %v", res.ID, res.Err())
		}
		if res.Result == nil {
			t.Errorf("expected result for %s", res.ID)
		}
	}
}

func TestBatchProcessor_ProcessIDs_Error(t *testing.T) {
	processor := NewBatchProcessor(&mockParser{failID: "CHRG-113jhrg10002"}, 2)

	ids := []string{"CHRG-113jhrg10001", "CHRG-113jhrg10002"}
	results := processor.ProcessIDs(context.Background(), ids)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	failures := 0
	for _, res := range results {
		if res.Err() != nil {
			failures++
			if res.ID != "CHRG-113jhrg10002" {
				t.Errorf("wrong hearing failed: %s", res.ID)
			}
		}
	}
	if failures != 1 {
		t.Errorf("expected 1 failure, got %d", failures)
	}
}

func TestBatchProcessor_ProcessIDs_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockParser{}, 2)

	results := processor.ProcessIDs(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBatchProcessor_LargeBatch(t *testing.T) {
	processor := NewBatchProcessor(&mockParser{}, 4)

	var ids []string
	for i := 0; i < 200; i++ {
		ids = append(ids, fmt.Sprintf("CHRG-113jhrg%d", 10000+i))
	}

	results := processor.ProcessIDs(context.Background(), ids)
	if len(results) != len(ids) {
		t.Errorf("expected %d results, got %d", len(ids), len(results))
	}
}

func TestValidateIDs(t *testing.T) {
	valid := []string{"CHRG-113jhrg79942", "CHRG-110shrg12345"}
	if err := ValidateIDs(valid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	invalid := [][]string{
		{"79942"},
		{"CHRG-abc"},
		{"CHRG-113jhrg79942", "not-a-jacket"},
	}
	for _, ids := range invalid {
		if err := ValidateIDs(ids); err == nil {
			t.Errorf("expected error for %v", ids)
		}
	}
}

func TestReadIDsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	content := "CHRG-113jhrg10001\n" +
		"\n" +
		"# a comment\n" +
		"CHRG-113jhrg10002\n" +
		"CHRG-113jhrg10001\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ids, err := ReadIDsFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"CHRG-113jhrg10001", "CHRG-113jhrg10002"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d: %v", len(want), len(ids), ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("id %d: expected %s, got %s", i, want[i], ids[i])
		}
	}
}

func TestReadIDsFromFile_Missing(t *testing.T) {
	if _, err := ReadIDsFromFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	if err := os.WriteFile(path, []byte("CHRG-113jhrg10001\nCHRG-113jhrg10002\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	processor := NewBatchProcessor(&mockParser{}, 2)
	results, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestProcessFile_InvalidID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	if err := os.WriteFile(path, []byte("bogus\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	processor := NewBatchProcessor(&mockParser{}, 2)
	if _, err := processor.ProcessFile(context.Background(), path); err == nil {
		t.Error("expected validation error")
	}
}
