package spell

import "testing"

func TestDistance_Basic(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "kitten", 0},
		{"kitten", "sitting", 3},
		{"ekonomi", "ekonomi", 0},
		{"ekonomi", "ekonmi", 1},   // deletion
		{"ekonomi", "ekonomii", 1}, // insertion
		{"ekonomi", "ekonami", 1},  // substitution
		{"ekonomi", "ekonmoi", 1},  // adjacent transposition
	}
	for _, c := range cases {
		if got := Distance(c.a, c.b); got != c.want {
			t.Errorf("Distance(%q, %q): expected %d, got %d", c.a, c.b, c.want, got)
		}
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"pertumbuhan", "pertmbuhan"},
		{"mencapai", "menacpai"},
		{"data", "date"},
	}
	for _, p := range pairs {
		if Distance(p[0], p[1]) != Distance(p[1], p[0]) {
			t.Errorf("Distance not symmetric for %q and %q", p[0], p[1])
		}
	}
}

func TestDistance_Unicode(t *testing.T) {
	// Distance counts runes, not bytes.
	if got := Distance("café", "cafe"); got != 1 {
		t.Errorf("Expected 1, got %d", got)
	}
}

func TestDistanceAtMost_EarlyExit(t *testing.T) {
	if got := DistanceAtMost("ab", "abcdefgh", 2); got != 3 {
		t.Errorf("Expected limit+1 for length gap, got %d", got)
	}
	if got := DistanceAtMost("kitten", "sitting", 2); got != 3 {
		t.Errorf("Expected limit+1 for distance over limit, got %d", got)
	}
	if got := DistanceAtMost("kitten", "kitted", 2); got != 1 {
		t.Errorf("Expected exact distance within limit, got %d", got)
	}
}
