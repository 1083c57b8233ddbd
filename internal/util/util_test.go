package util

import "testing"

func TestMaskSensitiveQuery(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"page=2&sort=name", "page=2&sort=name"},
		{"token=abcdefghijkl&page=1", "token=abcd...ijkl&page=1"},
		{"Access_Token=abcdef", "Access_Token=ab...ef"},
		{"password=abc", "password=a...c"},
	}
	for _, tc := range cases {
		if got := MaskSensitiveQuery(tc.raw); got != tc.want {
			t.Fatalf("MaskSensitiveQuery(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestDataDir(t *testing.T) {
	t.Setenv("BRIDGEBOARD_DATA_DIR", "  /var/lib/bridgeboard/  ")
	if got := DataDir(); got != "/var/lib/bridgeboard" {
		t.Fatalf("DataDir() = %q", got)
	}
	t.Setenv("BRIDGEBOARD_DATA_DIR", " ")
	if got := DataDir(); got != "" {
		t.Fatalf("expected empty data dir, got %q", got)
	}
}
