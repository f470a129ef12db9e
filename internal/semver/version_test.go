package semver

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", "1.0.0"},
		{"23.01", "23.1.0"},
		{"1.1.1.0", "1.1.1"},
		{"1.1.1.1", "1.1.1.1"},
		{"1-Alpha", "1.0.0-Alpha"},
		{"1.1.0.0-RC+2019", "1.1.0-RC+2019"},
		{"0", "0.0.0"},
		{"1.2", "1.2.0"},
		{"1.2.3", "1.2.3"},
		{"007.008.009", "7.8.9"},
		{"1.2.3.0004", "1.2.3.4"},
		{"1.2.3-alpha.1", "1.2.3-alpha.1"},
		{"1.2.3+build.5", "1.2.3+build.5"},
		{"1+sha-abc", "1.0.0+sha-abc"},
		{"2.0-rc-1", "2.0.0-rc-1"},
		{"1.2.3.4-beta+exp.sha.5114f85", "1.2.3.4-beta+exp.sha.5114f85"},
		{"18446744073709551615", "18446744073709551615.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"abc",
		"v1.2.3",
		" 1.2.3",
		"1.2.3 ",
		".1",
		"1.",
		"1..2",
		"1.2.3.4.5",
		"1-",
		"1+",
		"1-alpha..1",
		"1-alpha_1",
		"1+build+more",
		"-1",
		"1.2.a",
		"18446744073709551616",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := Normalize(input)
			if err == nil {
				t.Fatalf("Normalize(%q) = %q, expected error", input, got)
			}
			if !errors.Is(err, ErrInvalidVersionFormat) {
				t.Errorf("expected ErrInvalidVersionFormat, got %v", err)
			}
			var ive *InvalidVersionFormatError
			if !errors.As(err, &ive) {
				t.Fatalf("expected *InvalidVersionFormatError, got %T", err)
			}
			if ive.Input != input {
				t.Errorf("error Input = %q, want %q", ive.Input, input)
			}
			if got != "" {
				t.Errorf("expected empty result on failure, got %q", got)
			}
		})
	}
}

func TestInvalidVersionFormatError_Message(t *testing.T) {
	_, err := Normalize("abc")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `"abc"`) {
		t.Errorf("error should quote the input, got %q", err.Error())
	}

	_, err = Normalize("99999999999999999999")
	if err == nil {
		t.Fatal("expected overflow error")
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Errorf("expected range error detail, got %q", err.Error())
	}
}

func TestParse_Components(t *testing.T) {
	v, err := Parse("4.05.6.7-rc.1+linux")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Major != 4 || v.Minor != 5 || v.Patch != 6 {
		t.Errorf("unexpected numeric components: %+v", v)
	}
	if v.Revision == nil || *v.Revision != 7 {
		t.Errorf("expected revision 7, got %v", v.Revision)
	}
	if v.PreRelease != "rc.1" {
		t.Errorf("PreRelease = %q, want %q", v.PreRelease, "rc.1")
	}
	if v.Build != "linux" {
		t.Errorf("Build = %q, want %q", v.Build, "linux")
	}
}

func TestParse_RevisionPresence(t *testing.T) {
	tests := []struct {
		input       string
		wantPresent bool
		wantCanon   bool
	}{
		{"1.2.3", false, false},
		{"1.2.3.0", true, false},
		{"1.2.3.00", true, false},
		{"1.2.3.9", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (v.Revision != nil) != tt.wantPresent {
				t.Errorf("revision present = %v, want %v", v.Revision != nil, tt.wantPresent)
			}
			if v.HasRevision() != tt.wantCanon {
				t.Errorf("HasRevision() = %v, want %v", v.HasRevision(), tt.wantCanon)
			}
		})
	}
}

func TestNormalize_AtLeastThreeComponents(t *testing.T) {
	inputs := []string{"1", "1.2", "1-x", "1+y", "1.2.3.4", "0.0.0.0-a+b"}
	for _, input := range inputs {
		got := MustNormalize(input)
		core, _, _ := strings.Cut(got, "-")
		core, _, _ = strings.Cut(core, "+")
		if n := len(strings.Split(core, ".")); n < 3 {
			t.Errorf("Normalize(%q) = %q has %d numeric components", input, got, n)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"1", "23.01", "1.1.1.0", "1.1.1.1", "1-Alpha", "1.1.0.0-RC+2019",
		"0001.0002.0003.0004-x.y+z", "9.9",
	}
	for _, input := range inputs {
		once := MustNormalize(input)
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(%q) failed on canonical %q: %v", input, once, err)
		}
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestMustNormalize_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustNormalize to panic on invalid input")
		}
	}()
	_ = MustNormalize("not-a-version")
}

func TestParsedVersion_String(t *testing.T) {
	zero := uint64(0)
	three := uint64(3)
	tests := []struct {
		name string
		v    ParsedVersion
		want string
	}{
		{"zero value", ParsedVersion{}, "0.0.0"},
		{"zero revision dropped", ParsedVersion{Major: 1, Revision: &zero}, "1.0.0"},
		{"zero revision dropped with suffixes", ParsedVersion{Major: 1, Revision: &zero, PreRelease: "rc", Build: "b"}, "1.0.0-rc+b"},
		{"revision kept", ParsedVersion{Major: 1, Minor: 2, Patch: 3, Revision: &three}, "1.2.3.3"},
		{"build only", ParsedVersion{Major: 1, Build: "20130313"}, "1.0.0+20130313"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_Concurrent(t *testing.T) {
	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for range workers {
		wg.Go(func() {
			got, err := Normalize("1.1.0.0-RC+2019")
			if err != nil {
				errs <- err
				return
			}
			if got != "1.1.0-RC+2019" {
				errs <- errors.New("unexpected result " + got)
			}
		})
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
