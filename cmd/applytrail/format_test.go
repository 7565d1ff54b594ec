package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, map[string]int{"a": 1}); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	if got := buf.String(); got != "{\n  \"a\": 1\n}\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	formatTable(&buf, []string{"ID", "STAGE"}, [][]string{{"12", "TECHNICAL"}, {"3", ""}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"ID  STAGE",
		"--  ---------",
		"12  TECHNICAL",
		"3",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
