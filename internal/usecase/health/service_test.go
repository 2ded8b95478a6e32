package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockIndexChecker struct {
	exists bool
	err    error
	got    string
}

func (m *mockIndexChecker) IndexExists(_ context.Context, name string) (bool, error) {
	m.got = name
	return m.exists, m.err
}

// --- Tests ---

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		idx        *mockIndexChecker
		wantStatus Status
		wantDB     CheckResult
		wantIndex  CheckResult
	}{
		{"all healthy", nil, &mockIndexChecker{exists: true}, Healthy, CheckOK, CheckOK},
		{"index missing", nil, &mockIndexChecker{}, Degraded, CheckOK, CheckError},
		{"index check fails", nil, &mockIndexChecker{err: errors.New("timeout")}, Degraded, CheckOK, CheckError},
		{"db down", errors.New("conn refused"), &mockIndexChecker{exists: true}, Unhealthy, CheckError, CheckSkipped},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(&mockDBPinger{err: tc.pingErr}, tc.idx, "blogs").Check(context.Background())

			if r.Status != tc.wantStatus {
				t.Errorf("expected %q, got %q", tc.wantStatus, r.Status)
			}
			if r.Checks[CheckDatabase] != tc.wantDB {
				t.Errorf("expected database %q, got %q", tc.wantDB, r.Checks[CheckDatabase])
			}
			if r.Checks[CheckIndex] != tc.wantIndex {
				t.Errorf("expected index %q, got %q", tc.wantIndex, r.Checks[CheckIndex])
			}
		})
	}
}

func TestCheck_IndexName(t *testing.T) {
	idx := &mockIndexChecker{exists: true}
	New(&mockDBPinger{}, idx, "posts").Check(context.Background())
	if idx.got != "posts" {
		t.Errorf("expected index name posts, got %q", idx.got)
	}
}

func TestCheck_NoIndexChecker(t *testing.T) {
	r := New(&mockDBPinger{}, nil, "").Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks[CheckIndex]; ok {
		t.Error("index check should be absent when no checker is given")
	}
}
