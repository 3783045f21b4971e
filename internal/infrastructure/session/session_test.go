package session

import (
	"os"
	"path/filepath"
	"testing"
)

func restoreWd(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestChangeDirectoryCommitsOnSuccess(t *testing.T) {
	restoreWd(t)

	sess, err := NewFromProcess()
	if err != nil {
		t.Fatalf("NewFromProcess() error = %v", err)
	}

	dir := t.TempDir()
	if err := sess.ChangeDirectory(dir); err != nil {
		t.Fatalf("ChangeDirectory() error = %v", err)
	}

	real, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(sess.Cwd())
	if got != real {
		t.Fatalf("cwd = %s, want %s", got, real)
	}
	if sess.Environ() == nil {
		t.Fatal("environment snapshot missing")
	}
}

func TestChangeDirectoryFailureLeavesCwdUntouched(t *testing.T) {
	restoreWd(t)

	sess, err := NewFromProcess()
	if err != nil {
		t.Fatalf("NewFromProcess() error = %v", err)
	}
	before := sess.Cwd()

	if err := sess.ChangeDirectory(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if sess.Cwd() != before {
		t.Fatalf("cwd changed to %s after failed chdir", sess.Cwd())
	}
}

func TestUpdateAfterCommand(t *testing.T) {
	restoreWd(t)

	sess, err := NewFromProcess()
	if err != nil {
		t.Fatalf("NewFromProcess() error = %v", err)
	}

	if _, ok := sess.LastCommand(); ok {
		t.Fatal("fresh session must have no last command")
	}
	if _, ok := sess.LastStatus(); ok {
		t.Fatal("fresh session must have no last status")
	}

	sess.UpdateAfterCommand("false", 1)

	cmd, ok := sess.LastCommand()
	if !ok || cmd != "false" {
		t.Fatalf("last command = %q (%v), want false", cmd, ok)
	}
	status, ok := sess.LastStatus()
	if !ok || status != 1 {
		t.Fatalf("last status = %d (%v), want 1", status, ok)
	}
}
