package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.jot")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing test script: %s", err)
	}
	return path
}

func TestRunCheckOnValidSource(t *testing.T) {
	path := writeScript(t, `fun add(a: int32, b: int32) -> int32 { return a + b; }`)
	if err := runCheck(checkCmd, []string{path}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestRunCheckOnInvalidSource(t *testing.T) {
	path := writeScript(t, `fun broken() -> int32 { return true; }`)
	if err := runCheck(checkCmd, []string{path}); err == nil {
		t.Fatalf("expected a type-checking error")
	}
}

func TestRunCompileReportsStubBackendError(t *testing.T) {
	path := writeScript(t, `fun main() -> int32 { return 0; }`)
	if err := runCompile(compileCmd, []string{path}); err == nil {
		t.Fatalf("expected the stub backend to return an error")
	}
}
