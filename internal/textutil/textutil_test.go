package textutil

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	got := Normalize("  Tingkat \t pertumbuhan \n ekonomi  ")
	want := "Tingkat pertumbuhan ekonomi"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNormalize_ReplacesInvisibleSpaces(t *testing.T) {
	got := Normalize("kata\u200bsambung dan\u00a0spasi")
	want := "kata sambung dan spasi"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"  double  spaced  text  ",
		"already normal",
		"",
		"tab\tand\nnewline",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTokenize_WordShapes(t *testing.T) {
	got := Tokenize("kata-kata don't 12,5% (tahun)")
	want := []string{"kata-kata", "don't", "12", "5", "tahun"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestTokenize_KeepsDuplicates(t *testing.T) {
	got := Tokenize("data data data")
	if len(got) != 3 {
		t.Errorf("Expected 3 tokens, got %d", len(got))
	}
}

func TestSplitSegments_RoundTrip(t *testing.T) {
	inputs := []string{
		"Tingkat  pertumbuhan 12,5% tahun 2023",
		" leading and trailing ",
		"single",
		"\t\n",
		"",
	}
	for _, in := range inputs {
		segs := SplitSegments(in)
		if got := strings.Join(segs, ""); got != in {
			t.Errorf("Round trip failed for %q: got %q", in, got)
		}
	}
}

func TestSplitSegments_Alternates(t *testing.T) {
	segs := SplitSegments("a  b c")
	want := []string{"a", "  ", "b", " ", "c"}
	if !reflect.DeepEqual(segs, want) {
		t.Errorf("Expected %v, got %v", want, segs)
	}
}

func TestCleanToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(Tahun)", "tahun"},
		{"12,5%", "12,5%"},
		{"kata.", "kata."},
		{"!!!", ""},
		{"Mixed_Case", "mixed_case"},
	}
	for _, c := range cases {
		if got := CleanToken(c.in); got != c.want {
			t.Errorf("CleanToken(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestPreview_RuneSafe(t *testing.T) {
	s := "héllo wörld"
	got := Preview(s, 5)
	if got != "héllo" {
		t.Errorf("Expected %q, got %q", "héllo", got)
	}
	if Preview(s, 100) != s {
		t.Errorf("Expected full string when n exceeds length")
	}
	if Preview(s, 0) != "" {
		t.Errorf("Expected empty string for n=0")
	}
}
