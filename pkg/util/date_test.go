package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2025-06-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2025, 6, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2025, 6, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestParseFloatDefault(t *testing.T) {
	if got := ParseFloatDefault("0.35", 0.2); got != 0.35 {
		t.Fatalf("got %v", got)
	}
	if got := ParseFloatDefault("abc", 0.2); got != 0.2 {
		t.Fatalf("expected default, got %v", got)
	}
}

func TestParseBoolDefault(t *testing.T) {
	if !ParseBoolDefault("true", false) {
		t.Fatal("expected true")
	}
	if ParseBoolDefault("", false) {
		t.Fatal("expected default false")
	}
}
