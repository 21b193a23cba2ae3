package version

import "testing"

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		build    string
		expected string
	}{
		{"", "0.3.0"},
		{"abc-12", "0.3.0-abc-12"},
		{"dirty+tree", "0.3.0"},
		{"a b", "0.3.0"},
	}
	for _, test := range tests {
		if formatted := formatVersion(test.build); formatted != test.expected {
			t.Fatalf("formatVersion(%q): expected %s, got %s", test.build, test.expected, formatted)
		}
	}
	if Version() != formatVersion(appBuild) {
		t.Fatalf("Version() disagrees with formatVersion")
	}
}
