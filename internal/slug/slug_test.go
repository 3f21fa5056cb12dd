package slug_test

import (
	"testing"

	"jeetech/internal/slug"
)

func none(string) bool { return false }

func inSet(set ...string) func(string) bool {
	m := map[string]bool{}
	for _, s := range set {
		m[s] = true
	}
	return func(s string) bool { return m[s] }
}

func TestMake(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Home & Garden", "home-garden"},
		{"  Widget  ", "widget"},
		{"Électronics!!", "lectronics"},
		{"A--B__C", "a-b-c"},
		{"2025 Deals", "2025-deals"},
		{"", ""},
		{"!!!", ""},
	}
	for _, c := range cases {
		if got := slug.Make(c.in); got != c.want {
			t.Errorf("Make(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResolveNeverEmptyAndURLSafe(t *testing.T) {
	for _, name := range []string{"", "???", "Home & Garden", "A B C"} {
		got := slug.Resolve(name, "category", "new", none)
		if got == "" {
			t.Fatalf("Resolve(%q) returned empty slug", name)
		}
		for _, r := range got {
			ok := r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
			if !ok {
				t.Fatalf("Resolve(%q) = %q contains unsafe rune %q", name, got, r)
			}
		}
	}
}

func TestResolveEmptyNameFallback(t *testing.T) {
	if got := slug.Resolve("", "category", "new", none); got != "category-new" {
		t.Fatalf("want category-new, got %q", got)
	}
	if got := slug.Resolve("!!!", "product", "42", none); got != "product-42" {
		t.Fatalf("want product-42, got %q", got)
	}
}

func TestResolveProbesSuffixes(t *testing.T) {
	taken := inSet("home-garden")
	if got := slug.Resolve("Home & Garden", "category", "new", taken); got != "home-garden-1" {
		t.Fatalf("want home-garden-1, got %q", got)
	}
	taken = inSet("home-garden", "home-garden-1", "home-garden-2")
	if got := slug.Resolve("Home & Garden", "category", "new", taken); got != "home-garden-3" {
		t.Fatalf("want home-garden-3, got %q", got)
	}
}

func TestResolveNeverReturnsTaken(t *testing.T) {
	set := []string{"widget", "widget-1", "widget-2", "widget-3"}
	taken := inSet(set...)
	got := slug.Resolve("Widget", "product", "new", taken)
	for _, s := range set {
		if got == s {
			t.Fatalf("Resolve returned taken slug %q", got)
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	taken := inSet("gift-box")
	a := slug.Resolve("Gift Box", "product", "new", taken)
	b := slug.Resolve("Gift Box", "product", "new", taken)
	if a != b {
		t.Fatalf("same inputs gave %q then %q", a, b)
	}
}
