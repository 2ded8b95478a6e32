package version

import "testing"

func TestString(t *testing.T) {
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })

	Version, Commit, Date = "v1.4.0", "abc1234", "2026-01-02"
	if got, want := String(), "blogdex v1.4.0 (abc1234, 2026-01-02)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
