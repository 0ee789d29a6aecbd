package sanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/fittrack/internal/app/system/sanitize"
)

func TestText_StripsTags(t *testing.T) {
	got := sanitize.Text("  <b>Morning</b> <script>alert(1)</script>Yoga ")
	if got != "Morning Yoga" {
		t.Errorf("Text = %q, want %q", got, "Morning Yoga")
	}
}

func TestText_PlainUnchanged(t *testing.T) {
	if got := sanitize.Text("Leg day tips"); got != "Leg day tips" {
		t.Errorf("Text = %q", got)
	}
}

func TestContent_Empty(t *testing.T) {
	if got := sanitize.Content(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestContent_SafeHTML(t *testing.T) {
	input := "<p><strong>Bold</strong> and <em>italic</em></p>"
	if got := sanitize.Content(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestContent_RemovesScript(t *testing.T) {
	got := sanitize.Content("<p>Hello</p><script>alert('xss')</script>")
	if got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestContent_RemovesOnclick(t *testing.T) {
	got := sanitize.Content(`<button onclick="alert('xss')">Click</button>`)
	if strings.Contains(got, "onclick") {
		t.Errorf("expected onclick removed, got %q", got)
	}
}

func TestContent_RemovesJavascriptHref(t *testing.T) {
	got := sanitize.Content(`<a href="javascript:alert('xss')">Click</a>`)
	if strings.Contains(got, "javascript:") {
		t.Errorf("expected javascript: href removed, got %q", got)
	}
}

func TestContent_AllowsSafeLinks(t *testing.T) {
	got := sanitize.Content(`<a href="https://example.com">Link</a>`)
	if !strings.Contains(got, "https://example.com") {
		t.Errorf("expected safe link preserved, got %q", got)
	}
}
