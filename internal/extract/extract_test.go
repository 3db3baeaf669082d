package extract_test

import (
	"encoding/base64"
	"reflect"
	"testing"

	"harvester/internal/extract"
)

func TestExtractPatternFamilies(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "plain address",
			in:   "write to info@airline.example for rates",
			want: []string{"info@airline.example"},
		},
		{
			name: "spaced around at and dot",
			in:   "  OPS  @  CARGO . EXAMPLE  ",
			want: []string{"ops@cargo.example"},
		},
		{
			name: "percent encoded at sign",
			in:   "sales%40charter.example",
			want: []string{"sales@charter.example"},
		},
		{
			name: "plus in local part survives",
			in:   "reach ops+charter@airline.example for rates",
			want: []string{"ops+charter@airline.example"},
		},
		{
			name: "percent encoded with plus local part",
			in:   "ops+charter%40airline.example",
			want: []string{"ops+charter@airline.example"},
		},
		{
			name: "html entity at sign",
			in:   "booking&#64;heli.example",
			want: []string{"booking@heli.example"},
		},
		{
			name: "spelled out at and dot",
			in:   "dispatch at airline dot example",
			want: []string{"dispatch@airline.example"},
		},
		{
			name: "mailto link",
			in:   `<a href="MAILTO:Info@Airline.Example">mail us</a>`,
			want: []string{"info@airline.example"},
		},
		{
			name: "json email field",
			in:   `{"email": "cargo@airline.example", "phone": "123"}`,
			want: []string{"cargo@airline.example"},
		},
		{
			name: "data attribute",
			in:   `<span data-email="support@airline.example">contact</span>`,
			want: []string{"support@airline.example"},
		},
		{
			name: "multiple deduplicated and sorted",
			in:   "b@airline.example a@airline.example b@airline.example",
			want: []string{"a@airline.example", "b@airline.example"},
		},
		{
			name: "placeholder dropped",
			in:   "you@example.com noreply@airline.example real@airline.example",
			want: []string{"real@airline.example"},
		},
		{
			name: "no candidates",
			in:   "<html><body>no contacts here</body></html>",
			want: nil,
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	e := extract.New(extract.Options{DisableBase64Sweep: true, DisableRotateSweep: true})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Extract(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Extract(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractBase64Sweep(t *testing.T) {
	// padded to a multiple of four characters and beyond the minimum run length
	payload := base64.StdEncoding.EncodeToString([]byte("contact us at charter@airline.example ok"))

	e := extract.New(extract.Options{DisableRotateSweep: true})
	got := e.Extract("blob: " + payload)
	if !reflect.DeepEqual(got, []string{"charter@airline.example"}) {
		t.Errorf("Extract base64 = %v, want charter@airline.example", got)
	}

	off := extract.New(extract.Options{DisableBase64Sweep: true, DisableRotateSweep: true})
	if got := off.Extract("blob: " + payload); got != nil {
		t.Errorf("Extract with sweep disabled = %v, want nil", got)
	}
}

func TestExtractRotateSweep(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			// rot13 of ops@airline.example
			name: "plain encoded address",
			in:   "obfuscated: bcf@nveyvar.rknzcyr",
			want: "ops@airline.example",
		},
		{
			name: "punctuation bounded",
			in:   "<bcf@nveyvar.rknzcyr>",
			want: "ops@airline.example",
		},
		{
			// rot13 of air-ops@airline.example; the hyphen must stay a
			// literal member of the candidate alphabet.
			name: "hyphenated local part",
			in:   "cargo desk: nve-bcf@nveyvar.rknzcyr",
			want: "air-ops@airline.example",
		},
	}

	e := extract.New(extract.Options{DisableBase64Sweep: true})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Extract(tc.in)

			found := false
			for _, candidate := range got {
				if candidate == tc.want {
					found = true
				}
			}
			if !found {
				t.Errorf("Extract(%q) = %v, want %v present", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  FOO  @  BAR . COM  ", "foo@bar.com"},
		{"foo%40bar.com", "foo@bar.com"},
		{"ops+charter@airline.example", "ops+charter@airline.example"},
		{"ops+charter%40airline.example", "ops+charter@airline.example"},
		{"foo&#64;bar.com", "foo@bar.com"},
		{"foo at bar dot com", "foo@bar.com"},
		{`<info@airline.example>`, "info@airline.example"},
		{`"ops@cargo.example"`, "ops@cargo.example"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := extract.Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"info@airline.example", true},
		{"a@b.co", true},
		{"ops+charter@airline.example", true},
		{"Upper@Case.Example", false},
		{"missingdomain@", false},
		{"@missinglocal.example", false},
		{"nodot@example", false},
		{"short-tld@airline.x", false},
		{"you@example.com", false},
		{"noreply@airline.example", false},
		{"sprite@2x.png", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := extract.Valid(tc.in); got != tc.want {
			t.Errorf("Valid(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
