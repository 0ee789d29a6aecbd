package search

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTerm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Yoga", "yoga"},
		{"  Power   YOGA ", "power yoga"},
	}
	for _, tt := range tests {
		if got := Term(tt.in); got != tt.want {
			t.Errorf("Term(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContains_Empty(t *testing.T) {
	if got := Contains("name_ci", "  "); len(got) != 0 {
		t.Errorf("expected empty filter, got %v", got)
	}
}

func TestContains_EscapesRegex(t *testing.T) {
	got := Contains("name_ci", "Spin (45 min)+")
	want := bson.M{"name_ci": primitive.Regex{Pattern: `spin \(45 min\)\+`}}
	re, ok := got["name_ci"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected primitive.Regex, got %T", got["name_ci"])
	}
	if re != want["name_ci"] {
		t.Errorf("pattern = %q, want %q", re.Pattern, want["name_ci"].(primitive.Regex).Pattern)
	}
}
