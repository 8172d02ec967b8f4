package osint

import "testing"

func TestBraceExtractor_CleanJSON(t *testing.T) {
	in := `{"businessName":"X","city":"Y"}`
	out, err := BraceExtractor{}.Extract(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != in {
		t.Errorf("extraction of clean JSON must be identity, got %s", out)
	}
}

func TestBraceExtractor_StripsSurroundingProse(t *testing.T) {
	in := "Here is the result:\n{\"businessName\":\"X\",\"city\":\"Y\"}\nThanks"
	out, err := BraceExtractor{}.Extract(in)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"businessName":"X","city":"Y"}`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestBraceExtractor_StripsMarkdownFence(t *testing.T) {
	in := "```json\n{\"city\":\"Madrid\"}\n```"
	out, err := BraceExtractor{}.Extract(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"city":"Madrid"}` {
		t.Errorf("got %s", out)
	}
}

func TestBraceExtractor_NoBraces(t *testing.T) {
	ex := BraceExtractor{}
	for _, in := range []string{"no data found", "", "}{"} {
		if _, err := ex.Extract(in); !IsMalformed(err) {
			t.Errorf("Extract(%q) = %v, want MalformedResponseError", in, err)
		}
	}
}

func TestBraceExtractor_InvalidJSONBetweenBraces(t *testing.T) {
	_, err := BraceExtractor{}.Extract(`{"a": }`)
	if !IsMalformed(err) {
		t.Errorf("got %v, want MalformedResponseError", err)
	}
}

func TestBraceExtractor_NoRepairOfTruncation(t *testing.T) {
	// Truncated output is rejected outright, never patched.
	_, err := BraceExtractor{}.Extract(`{"businessName":"X","painPoints":["a","b"`)
	if !IsMalformed(err) {
		t.Errorf("got %v, want MalformedResponseError", err)
	}
}
