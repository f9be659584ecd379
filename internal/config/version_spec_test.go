package config

import (
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestVersionSpec_MarshalYAML(t *testing.T) {
	type holder struct {
		Version VersionSpec `yaml:"version"`
	}

	out, err := yaml.Marshal(holder{Version: semVer(t, "1.2.3")})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "Semantic: 1.2.3") {
		t.Errorf("unexpected output %q", out)
	}

	out, err = yaml.Marshal(holder{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "version: null") {
		t.Errorf("unset spec should be null, got %q", out)
	}
}

func TestVersionSpec_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "semantic", input: "version:\n  Semantic: 3.0.0-rc.2\n", want: "3.0.0-rc.2"},
		{name: "flow mapping", input: "version: {Semantic: 0.0.1}\n", want: "0.0.1"},
		{name: "null", input: "version: null\n", want: ""},
		{name: "empty mapping", input: "version: {}\n", want: ""},
		{name: "unknown scheme", input: "version: {Calendar: v2024}\n", wantErr: "unknown scheme"},
		{name: "two schemes", input: "version: {Semantic: 1.0.0, Calendar: x}\n", wantErr: "exactly one scheme"},
		{name: "bad version", input: "version: {Semantic: one.two}\n", wantErr: "malformed version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h struct {
				Version VersionSpec `yaml:"version"`
			}
			err := yaml.Unmarshal([]byte(tt.input), &h)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := h.Version.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if h.Version.IsZero() != (tt.want == "") {
				t.Errorf("IsZero() = %v", h.Version.IsZero())
			}
		})
	}
}

func TestVersionSpec_Accessors(t *testing.T) {
	var zero VersionSpec
	if zero.Scheme() != "" {
		t.Errorf("zero Scheme() = %q", zero.Scheme())
	}
	if _, ok := zero.SemVer(); ok {
		t.Error("zero SemVer() reported ok")
	}

	s := semVer(t, "4.5.6")
	if s.Scheme() != SchemeSemantic {
		t.Errorf("Scheme() = %q", s.Scheme())
	}
	if v, ok := s.SemVer(); !ok || v.Major != 4 {
		t.Errorf("SemVer() = %+v, %v", v, ok)
	}
}
