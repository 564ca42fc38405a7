package main

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunScenarioFile(t *testing.T) {
	out, err := execute(t, "run", "testdata/watchdog.yaml")
	if err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	if !strings.Contains(out, "standby at") || !strings.Contains(out, "read [0] 4e") {
		t.Fatalf("report:\n%s", out)
	}
}

func TestFlashImage(t *testing.T) {
	out, err := execute(t, "flash", "testdata/app.bin")
	if err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	if !strings.Contains(out, "programmed 11 bytes, started at 08002000") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := execute(t, "run", "testdata/none.yaml"); err == nil {
		t.Fatal("missing scenario accepted")
	}
}
