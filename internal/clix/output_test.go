package clix

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"table", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]string{"version": "1.0.0"}); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"version\": \"1.0.0\"\n}\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestInputs(t *testing.T) {
	got, err := Inputs([]string{"1"}, strings.NewReader("2\n"))
	if err != nil || len(got) != 1 || got[0] != "1" {
		t.Fatalf("args should win over stdin: %v, %v", got, err)
	}

	got, err = Inputs(nil, strings.NewReader("  1.2 \n\n1.2.3.4\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "1.2,1.2.3.4" {
		t.Errorf("lines = %q", got)
	}

	if _, err := Inputs(nil, strings.NewReader("\n \n")); err == nil {
		t.Error("expected error for blank stdin")
	}
	if _, err := Inputs(nil, nil); err == nil {
		t.Error("expected error without args or stdin")
	}
}
