package app

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Adda-Baaj/petstore-client/internal/config"
	"github.com/Adda-Baaj/petstore-client/internal/runner"
	"github.com/Adda-Baaj/petstore-client/internal/storage"
)

const seedYAML = `
pets:
  - {id: 1, name: doggie, status: available}
users:
  - {username: johnDoe, password: secret}
`

const checksYAML = `
checks:
  - id: get-pet
    operation: getPetById
    params: {id: 1}
    expect_status: 200
    expect_found: true
  - id: login
    operation: loginUser
    params: {username: johnDoe, password: secret}
    expect_status: 200
    expect_body_contains: ["logged in user session"]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func startTwin(t *testing.T, dir string) string {
	t.Helper()
	tw, err := NewTwin(&config.Config{TwinSeedFile: writeFile(t, dir, "seed.yaml", seedYAML)}, nil)
	if err != nil {
		t.Fatalf("NewTwin: %v", err)
	}
	srv := httptest.NewServer(tw.Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func checkerConfig(t *testing.T, dir, baseURL, checksFile string) *config.Config {
	t.Helper()
	return &config.Config{
		BaseURL:                baseURL,
		RequestTimeout:         2 * time.Second,
		ChecksFile:             checksFile,
		PublishersFile:         filepath.Join(dir, "missing-publishers.yaml"),
		StorageType:            "bbolt",
		BBoltPath:              filepath.Join(dir, "journal.db"),
		StorageTTL:             time.Hour,
		StorageCleanupInterval: time.Hour,
	}
}

func TestCheckerRunsOnceAgainstTwin(t *testing.T) {
	dir := t.TempDir()
	cfg := checkerConfig(t, dir, startTwin(t, dir), writeFile(t, dir, "checks.yaml", checksYAML))

	checker, err := NewChecker(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}
	if err := checker.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	store, err := storage.NewStore("bbolt", cfg.BBoltPath, storage.Options{})
	if err != nil {
		t.Fatalf("reopen journal: %v", err)
	}
	defer store.Close()
	rec, found, err := store.LastOutcome("login")
	if err != nil || !found || !rec.Passed || rec.StatusCode != 200 {
		t.Fatalf("unexpected journal record %+v found=%v err=%v", rec, found, err)
	}
}

func TestCheckerReportsFailedChecks(t *testing.T) {
	dir := t.TempDir()
	failing := `
checks:
  - id: missing-pet
    operation: getPetById
    params: {id: 9999}
    expect_status: 200
`
	cfg := checkerConfig(t, dir, startTwin(t, dir), writeFile(t, dir, "checks.yaml", failing))
	cfg.StorageType = "none"

	checker, err := NewChecker(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}
	if err := checker.Run(context.Background()); !errors.Is(err, runner.ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}
}

func TestCheckerLoopStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	cfg := checkerConfig(t, dir, startTwin(t, dir), writeFile(t, dir, "checks.yaml", checksYAML))
	cfg.StorageType = "none"
	cfg.CheckInterval = time.Hour

	checker, err := NewChecker(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- checker.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("checker did not stop after cancel")
	}
}

func TestNewCheckerRequiresChecksFile(t *testing.T) {
	dir := t.TempDir()
	cfg := checkerConfig(t, dir, "http://127.0.0.1:1", filepath.Join(dir, "nope.yaml"))
	if _, err := NewChecker(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for missing checks file")
	}
}
