package commands

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	r := NewRegistry()
	fs := flag.NewFlagSet("spawn", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	radius := fs.Float64("r", 1, "radius")
	var gotArgs []string
	r.Register("spawn", "add a body", fs, func() error {
		gotArgs = fs.Args()
		return nil
	})
	r.Register("fail", "always fails", nil, func() error { return errors.New("boom") })

	if err := r.ExecuteLine("/spawn -r 2.5 circle"); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if *radius != 2.5 || len(gotArgs) != 1 || gotArgs[0] != "circle" {
		t.Fatalf("got radius %v args %q", *radius, gotArgs)
	}

	if err := r.ExecuteLine("spawn box"); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if *radius != 1 {
		t.Fatalf("flag kept its previous value: got %v want 1", *radius)
	}

	tests := []struct {
		line string
		want error
	}{
		{"", ErrMissingCommand},
		{"teleport", ErrUnknownCommand},
	}
	for _, tt := range tests {
		if err := r.ExecuteLine(tt.line); !errors.Is(err, tt.want) {
			t.Fatalf("%q: got err %v want %v", tt.line, err, tt.want)
		}
	}
	if err := r.ExecuteLine("fail"); err == nil || err.Error() != "boom" {
		t.Fatalf("fail: got %v", err)
	}
	if err := r.ExecuteLine("spawn -nope"); err == nil {
		t.Fatal("expected a flag parse error")
	}
}

func TestUsageListsCommandsInOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("step", "advance one tick", nil, func() error { return nil })
	r.Register("pause", "toggle pause", nil, func() error { return nil })

	var buf bytes.Buffer
	r.Usage(&buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "pause") || !strings.Contains(lines[1], "advance one tick") {
		t.Fatalf("usage: %q", buf.String())
	}
}
