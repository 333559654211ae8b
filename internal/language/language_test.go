package language

import "testing"

func TestNormalize_Aliases(t *testing.T) {
	cases := map[string]string{
		"py3":        "python",
		"Python3":    "python",
		"  golang  ": "go",
		"C++":        "cpp",
		"c#":         "csharp",
		"nodejs":     "javascript",
		"kt":         "kotlin",
		"rust":       "rust",
		"mysql":      "sql",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalize_UnknownPassesThrough(t *testing.T) {
	if got := Normalize("Brainfuck"); got != "Brainfuck" {
		t.Fatalf("expected unknown token unchanged, got %q", got)
	}
}

func TestExtension(t *testing.T) {
	if got := Extension(Normalize("py3")); got != "py" {
		t.Fatalf("expected py, got %s", got)
	}
	if got := Extension("csharp"); got != "cs" {
		t.Fatalf("expected cs, got %s", got)
	}
	if got := Extension("cobol"); got != DefaultExtension {
		t.Fatalf("expected default extension, got %s", got)
	}
}

func TestHasOrOperator(t *testing.T) {
	for _, lang := range []string{"java", "cpp", "go", "javascript", "rust"} {
		if !HasOrOperator(lang) {
			t.Fatalf("expected %s in or-operator set", lang)
		}
	}
	for _, lang := range []string{"python", "ruby", "sql", "c++"} {
		if HasOrOperator(lang) {
			t.Fatalf("expected %s outside or-operator set", lang)
		}
	}
}

func TestChoices_OrderAndCopy(t *testing.T) {
	choices := Choices()
	if len(choices) != 18 {
		t.Fatalf("expected 18 choices, got %d", len(choices))
	}
	if choices[0] != "python" || choices[2] != "c++" {
		t.Fatalf("unexpected order: %v", choices[:3])
	}
	choices[0] = "mutated"
	if Choices()[0] != "python" {
		t.Fatalf("Choices must return a copy")
	}
}

func TestLoad_Invalid(t *testing.T) {
	if _, err := Load([]byte("languages: {}")); err == nil {
		t.Fatalf("expected error for empty table")
	}
	if _, err := Load([]byte("languages: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}
