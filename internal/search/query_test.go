package search

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Back-End,  Go!", "backend go"},
		{"  Senior\tEngineer ", "senior engineer"},
		{"C++ / Rust", "c rust"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpand(t *testing.T) {
	if got := Expand("  "); got != nil {
		t.Fatalf("expected nil for blank query, got %v", got)
	}

	got := Expand("Frontend Jakarta")
	want := []string{"frontend jakarta", "front end jakarta", "frontend developer jakarta", "ui engineer jakarta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	got = Expand("Front End")
	want = []string{"front end", "frontend", "frontend developer", "ui engineer"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("two-word head: got %v, want %v", got, want)
	}

	for _, v := range Expand("frontend") {
		if v != Normalize(v) {
			t.Fatalf("variant %q is not normalised", v)
		}
	}

	got = Expand("rust")
	if !reflect.DeepEqual(got, []string{"rust"}) {
		t.Fatalf("unknown term should pass through alone, got %v", got)
	}
}
