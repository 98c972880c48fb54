package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rustyeddy/fdp"
)

func TestVersionRunPrintsVersionJSON(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)

	if err := versionRun(versionCmd, nil); err != nil {
		t.Fatalf("versionRun returned an error: %v", err)
	}

	if got := strings.TrimSpace(out.String()); got != string(fdp.VersionJSON()) {
		t.Errorf("expected %s, got %s", fdp.VersionJSON(), got)
	}
}
