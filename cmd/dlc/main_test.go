package main

import "testing"

func TestParseArgsSourceOnly(t *testing.T) {
	source, output, check, ok := parseArgs([]string{"dlc", "foo.datalang"})
	if !ok {
		t.Fatalf("expected ok")
	}
	if source != "foo.datalang" || output != "" || check {
		t.Fatalf("got source=%q output=%q check=%v", source, output, check)
	}
}

func TestParseArgsWithOutputFlag(t *testing.T) {
	source, output, check, ok := parseArgs([]string{"dlc", "foo.datalang", "-o", "out.ll"})
	if !ok {
		t.Fatalf("expected ok")
	}
	if source != "foo.datalang" || output != "out.ll" || check {
		t.Fatalf("got source=%q output=%q check=%v", source, output, check)
	}
}

func TestParseArgsMissingSource(t *testing.T) {
	_, _, _, ok := parseArgs([]string{"dlc"})
	if ok {
		t.Fatalf("expected not ok with no source path")
	}
}

func TestParseArgsDanglingOutputFlag(t *testing.T) {
	_, _, _, ok := parseArgs([]string{"dlc", "foo.datalang", "-o"})
	if ok {
		t.Fatalf("expected not ok when -o has no value")
	}
}

func TestParseArgsCheckMode(t *testing.T) {
	source, output, check, ok := parseArgs([]string{"dlc", "--check", "foo.datalang"})
	if !ok {
		t.Fatalf("expected ok")
	}
	if source != "foo.datalang" || output != "" || !check {
		t.Fatalf("got source=%q output=%q check=%v", source, output, check)
	}
}

func TestJournalPathDefaultsWithoutEnv(t *testing.T) {
	t.Setenv("DLC_JOURNAL", "")
	if got := journalPath(); got != "dlc.journal.db" {
		t.Fatalf("got %q", got)
	}
}

func TestJournalPathHonorsEnv(t *testing.T) {
	t.Setenv("DLC_JOURNAL", "custom.db")
	if got := journalPath(); got != "custom.db" {
		t.Fatalf("got %q", got)
	}
}
