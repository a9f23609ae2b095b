//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "cart-api"
	ConsumerName = "cart-widget"

	StateInventorySeeded = "inventory is seeded"
	StateCartEmpty       = "cart is empty"
	StateCartHasEntry    = "cart has entry 1"
)

const (
	ExistingEntryID = "1"
	MissingEntryID  = "404"
)

// ExampleInventory is the catalog the provider serves for StateInventorySeeded.
func ExampleInventory() []map[string]any {
	return []map[string]any{
		{"id": "1", "content": "Apple"},
		{"id": "2", "content": "Banana"},
	}
}

// ExampleCartEntry is the entry present for StateCartHasEntry.
func ExampleCartEntry() map[string]any {
	return map[string]any{
		"id":       ExistingEntryID,
		"content":  "Apple",
		"quantity": 3,
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the widget consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
