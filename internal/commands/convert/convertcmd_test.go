package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/indaco/tosemver/internal/clix"
	"github.com/indaco/tosemver/internal/config"
	"github.com/urfave/cli/v3"
)

func runConvert(t *testing.T, env *clix.Env, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := &cli.Command{
		Name:      "tosemver",
		Reader:    strings.NewReader(stdin),
		Writer:    &stdout,
		ErrWriter: &stderr,
		Commands:  []*cli.Command{Run(env)},
	}

	err := root.Run(context.Background(), append([]string{"tosemver", "convert"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestConvertCmd_Args(t *testing.T) {
	out, _, err := runConvert(t, clix.NewEnv(), "", "1", "1.2", "1.2.3.4", "1.1.0.0-RC+2019")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "1.0.0\n1.2.0\n1.2.3.4\n1.1.0-RC+2019\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestConvertCmd_Alias(t *testing.T) {
	var stdout bytes.Buffer
	root := &cli.Command{
		Name:     "tosemver",
		Writer:   &stdout,
		Commands: []*cli.Command{Run(clix.NewEnv())},
	}
	if err := root.Run(context.Background(), []string{"tosemver", "normalize", "2"}); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "2.0.0\n" {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestConvertCmd_Stdin(t *testing.T) {
	out, _, err := runConvert(t, clix.NewEnv(), "1.2\n\n  3.4.5.6-beta \n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1.2.0\n3.4.5.6-beta\n" {
		t.Errorf("output = %q", out)
	}
}

func TestConvertCmd_EmptyStdin(t *testing.T) {
	_, _, err := runConvert(t, clix.NewEnv(), "")
	if err == nil || !strings.Contains(err.Error(), "no versions") {
		t.Fatalf("expected no versions error, got %v", err)
	}
}

func TestConvertCmd_PartialFailure(t *testing.T) {
	out, errOut, err := runConvert(t, clix.NewEnv(), "", "1.2", "v1.2", "3")
	if err == nil {
		t.Fatal("expected error for invalid input")
	}
	if !strings.Contains(err.Error(), "1 of 3") {
		t.Errorf("error = %v", err)
	}
	if out != "1.2.0\n3.0.0\n" {
		t.Errorf("valid inputs should still be printed, got %q", out)
	}
	if !strings.Contains(errOut, `"v1.2"`) {
		t.Errorf("stderr should name the bad input, got %q", errOut)
	}
}

func TestConvertCmd_Strict(t *testing.T) {
	_, errOut, err := runConvert(t, clix.NewEnv(), "", "--strict", "1.2.3.4")
	if err == nil {
		t.Fatal("expected strict mode error")
	}
	if !strings.Contains(errOut, "strict") {
		t.Errorf("stderr = %q", errOut)
	}

	env := clix.NewEnv()
	env.Config = &config.Config{Strict: true}
	if _, _, err := runConvert(t, env, "", "1.2.3.4"); err == nil {
		t.Error("strict from config should reject revision")
	}
}

func TestConvertCmd_JSON(t *testing.T) {
	out, _, err := runConvert(t, clix.NewEnv(), "", "--format", "json", "1.2.3.4", "x")
	if err == nil {
		t.Fatal("expected error for invalid input")
	}

	var got []jsonOutcome
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Input != "1.2.3.4" || got[0].Version != "1.2.3.4" || got[0].Error != "" {
		t.Errorf("entry 0 = %+v", got[0])
	}
	if got[1].Version != "" || got[1].Error == "" {
		t.Errorf("entry 1 = %+v", got[1])
	}
}

func TestConvertCmd_BadFormat(t *testing.T) {
	if _, _, err := runConvert(t, clix.NewEnv(), "", "--format", "yaml", "1"); err == nil {
		t.Fatal("expected error for unsupported output format")
	}
}
