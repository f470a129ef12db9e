package compare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/indaco/tosemver/internal/clix"
	"github.com/indaco/tosemver/internal/semver"
	"github.com/urfave/cli/v3"
)

func runCompare(args ...string) (string, error) {
	var stdout bytes.Buffer
	root := &cli.Command{
		Name:     "tosemver",
		Writer:   &stdout,
		Commands: []*cli.Command{Run(clix.NewEnv())},
	}
	err := root.Run(context.Background(), append([]string{"tosemver", "compare"}, args...))
	return stdout.String(), err
}

func TestCompareCmd(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"1", "1.0.0", "0\n"},
		{"1.2", "1.10", "-1\n"},
		{"2.0.0.5", "2.0.0.4", "1\n"},
		{"1.0.0-alpha", "1.0.0", "-1\n"},
		{"1.0.0+build", "1.0.0", "0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			out, err := runCompare(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestCompareCmd_JSON(t *testing.T) {
	out, err := runCompare("--format", "json", "1.2.3.4", "1.2.3")
	if err != nil {
		t.Fatal(err)
	}

	var got jsonResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got.A != "1.2.3.4" || got.B != "1.2.3" || got.Result != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestCompareCmd_Errors(t *testing.T) {
	if _, err := runCompare("1.0.0"); err == nil {
		t.Error("expected error for a single argument")
	}
	if _, err := runCompare("1.0.0", "banana"); !errors.Is(err, semver.ErrInvalidVersionFormat) {
		t.Errorf("expected ErrInvalidVersionFormat, got %v", err)
	}
}
