package runner

import (
	"strings"
	"testing"
)

func TestSnippet(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"empty":      {body: "  ", want: "<empty>"},
		"json":       {body: ` {"code":1} `, want: `{"code":1}`},
		"html":       {body: badGatewayPage, want: "502 Bad Gateway nginx"},
		"title only": {body: "<html><head><title>Down</title></head><body></body></html>", want: "Down"},
		"html with distinct title": {
			body: "<html><head><title>Oops</title></head><body><p>try later</p></body></html>",
			want: "Oops: try later",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := snippet(tc.body); got != tc.want {
				t.Fatalf("snippet = %q want %q", got, tc.want)
			}
		})
	}
}

func TestSnippetTruncates(t *testing.T) {
	got := snippet(strings.Repeat("x", 300))
	if len(got) != maxSnippetLen+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected truncation %q", got)
	}
}
