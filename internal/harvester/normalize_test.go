package harvester_test

import (
	"testing"

	"harvester/internal/harvester"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
		ok   bool
	}{
		{
			name: "lowercase scheme and host; add root path",
			in:   "HTTP://Airline.EXAMPLE",
			out:  "http://airline.example/",
			ok:   true,
		},
		{
			name: "remove default http port",
			in:   "http://airline.example:80/contact",
			out:  "http://airline.example/contact",
			ok:   true,
		},
		{
			name: "remove default https port",
			in:   "https://airline.example:443/",
			out:  "https://airline.example/",
			ok:   true,
		},
		{
			name: "keep non-default port",
			in:   "http://airline.example:8080/",
			out:  "http://airline.example:8080/",
			ok:   true,
		},
		{
			name: "clean path and drop trailing slash",
			in:   "http://airline.example//a/./b/../contact/",
			out:  "http://airline.example/a/contact",
			ok:   true,
		},
		{
			name: "sort query keys and values",
			in:   "http://AIRLINE.example/search?b=2&a=2&a=1",
			out:  "http://airline.example/search?a=1&a=2&b=2",
			ok:   true,
		},
		{
			name: "remove fragment",
			in:   "https://airline.example/contact?x=1#team",
			out:  "https://airline.example/contact?x=1",
			ok:   true,
		},
		{
			name: "invalid url",
			in:   "http://air line.example/%zz",
			out:  "",
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := harvester.NormalizeURL(tc.in)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}

				return
			}
			if got != tc.out {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}
