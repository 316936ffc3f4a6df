package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	in := `
# comment
SANDBOX_DT=0.01
export LOG_LEVEL = "debug"
QUOTED='a b'
=novalue
garbage
`
	got, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := map[string]string{"SANDBOX_DT": "0.01", "LOG_LEVEL": "debug", "QUOTED": "a b"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: got %q want %q", k, got[k], v)
		}
	}
}

func TestLoadKeepsProcessEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ENV_TEST_SET=file\nENV_TEST_NEW=file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENV_TEST_SET", "process")
	t.Setenv("ENV_TEST_NEW", "")
	os.Unsetenv("ENV_TEST_NEW")

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v := os.Getenv("ENV_TEST_SET"); v != "process" {
		t.Fatalf("ENV_TEST_SET: got %q want process", v)
	}
	if v := os.Getenv("ENV_TEST_NEW"); v != "file" {
		t.Fatalf("ENV_TEST_NEW: got %q want file", v)
	}
	if err := Load(filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Fatalf("missing file: %v", err)
	}
}

func TestTypedLookups(t *testing.T) {
	t.Setenv("ENV_TEST_FLOAT", "0.25")
	t.Setenv("ENV_TEST_INT", "12")
	t.Setenv("ENV_TEST_BOOL", "true")
	t.Setenv("ENV_TEST_BAD", "nope")

	if f, err := Float32("ENV_TEST_FLOAT", 1); err != nil || f != 0.25 {
		t.Fatalf("Float32: got %v, %v", f, err)
	}
	if n, err := Int("ENV_TEST_INT", 1); err != nil || n != 12 {
		t.Fatalf("Int: got %v, %v", n, err)
	}
	if b, err := Bool("ENV_TEST_BOOL", false); err != nil || !b {
		t.Fatalf("Bool: got %v, %v", b, err)
	}
	if f, err := Float32("ENV_TEST_UNSET", 3); err != nil || f != 3 {
		t.Fatalf("unset: got %v, %v", f, err)
	}
	if _, err := Int("ENV_TEST_BAD", 0); err == nil || !strings.Contains(err.Error(), "ENV_TEST_BAD") {
		t.Fatalf("bad int: got %v", err)
	}
	if s := String("ENV_TEST_UNSET", "def"); s != "def" {
		t.Fatalf("String: got %q want def", s)
	}
}
