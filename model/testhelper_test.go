package model

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// captureWarnings は警告をテスト用フックに差し替え、テスト終了時に元へ戻します。
func captureWarnings(t *testing.T) *logtest.Hook {
	t.Helper()
	l, hook := logtest.NewNullLogger()
	SetLogger(l)
	t.Cleanup(func() { SetLogger(nil) })
	return hook
}

// expectWarning は直近の警告が指定された op で記録されたことを確認します。
func expectWarning(t *testing.T, hook *logtest.Hook, op string) {
	t.Helper()
	entry := hook.LastEntry()
	if entry == nil {
		t.Fatalf("expected a warning for %s, got none", op)
	}
	if entry.Level != logrus.WarnLevel {
		t.Errorf("expected warn level, got %s", entry.Level)
	}
	if got := entry.Data["op"]; got != op {
		t.Errorf("expected op %q, got %v", op, got)
	}
}

// expectNoWarning は警告が記録されていないことを確認します。
func expectNoWarning(t *testing.T, hook *logtest.Hook) {
	t.Helper()
	if n := len(hook.AllEntries()); n != 0 {
		t.Errorf("expected no warnings, got %d: %v", n, hook.LastEntry().Message)
	}
}

const epsilon = 0.001

func approxEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < epsilon
}
