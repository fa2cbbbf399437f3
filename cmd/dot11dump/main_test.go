package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunDecodesHexFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frames.hex")
	content := strings.Join([]string{
		"# good frame, bad version, bad hex, good frame",
		"0800" + "0000" + strings.Repeat("00", 18) + "0000" + "00000000",
		"0900" + "0000" + strings.Repeat("00", 18) + "0000" + "00000000",
		"zz",
		"0800" + "0000" + strings.Repeat("00", 18) + "0000" + "00000000",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write frames: %v", err)
	}
	if err := run("", path, "", false, false, 2); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunRejectsBothInputs(t *testing.T) {
	if err := run("a.pcap", "b.hex", "", false, false, 1); err == nil {
		t.Fatalf("expected error for conflicting inputs")
	}
}

func TestRunMissingCapture(t *testing.T) {
	if err := run(filepath.Join(t.TempDir(), "missing.pcap"), "", "", false, false, 1); err == nil {
		t.Fatalf("expected error for missing capture")
	}
}

func TestPcapFlagExplainsTypeNumbering(t *testing.T) {
	fs := flag.NewFlagSet("dot11dump", flag.ContinueOnError)
	o := bindFlags(fs)
	if err := fs.Parse([]string{"-pcap", "in.pcap", "-workers", "3"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.pcapPath != "in.pcap" || o.workers != 3 {
		t.Fatalf("unexpected options %+v", *o)
	}
	usage := fs.Lookup("pcap").Usage
	if !strings.Contains(usage, "00 control") || !strings.Contains(usage, "not IEEE") {
		t.Fatalf("pcap usage does not explain type numbering: %q", usage)
	}
}
