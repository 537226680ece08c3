package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (s *sample) Validate() error {
	if s.Port == 0 {
		return errors.New("port is required")
	}
	return nil
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("CLAVCAL_TEST_NAME", "planner")
	var s sample
	if err := Load(writeFile(t, "name: ${CLAVCAL_TEST_NAME}\nport: 9000\n"), &s); err != nil {
		t.Fatal(err)
	}
	if s.Name != "planner" || s.Port != 9000 {
		t.Errorf("loaded = %+v", s)
	}
}

func TestLoad_RunsValidator(t *testing.T) {
	var s sample
	err := Load(writeFile(t, "name: x\n"), &s)
	if err == nil || !strings.Contains(err.Error(), "config validation failed") {
		t.Fatalf("err = %v", err)
	}
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	var s sample
	err := Decode([]byte("port: 1\nprot: 2\n"), &s)
	if err == nil || !strings.Contains(err.Error(), "prot") {
		t.Fatalf("err = %v", err)
	}
}

func TestDecode_KeepsDefaults(t *testing.T) {
	s := sample{Name: "default", Port: 1}
	if err := Decode([]byte("port: 2\n"), &s); err != nil {
		t.Fatal(err)
	}
	if s.Name != "default" || s.Port != 2 {
		t.Errorf("decoded = %+v", s)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var s sample
	err := Load(filepath.Join(t.TempDir(), "missing.yaml"), &s)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}
