package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dreamw/travel-quote/internal/adapter/jsonfile"
	"github.com/dreamw/travel-quote/internal/adapter/terminal"
	"github.com/dreamw/travel-quote/internal/domain"
	"github.com/dreamw/travel-quote/internal/usecase/client"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestPrintHistory(t *testing.T) {
	store, err := jsonfile.New(filepath.Join(t.TempDir(), "history.json"))
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	past := client.NewRateLimiter(store, fixedClock{now.Add(-10 * time.Minute)}, client.WithLimiterLogger(log.New(io.Discard, "", 0)))
	past.RecordAttempt(ctx)
	past.RecordAttempt(ctx)
	past.RecordAttempt(ctx)

	limiter := client.NewRateLimiter(store, fixedClock{now}, client.WithLimiterLogger(log.New(io.Discard, "", 0)))
	var buf bytes.Buffer
	printHistory(&buf, limiter, now)

	out := buf.String()
	if !strings.Contains(out, "3 of 3 submissions") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "frees up in 50m0s") {
		t.Errorf("want time until slot frees, got %q", out)
	}
	if !strings.Contains(out, "Limit reached") {
		t.Errorf("want limit notice, got %q", out)
	}
}

func TestReadFormFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	data := `
name: Ana Souza
email: ana@example.com
origin: Lisbon
destination: Kyoto
startDate: "2026-11-02"
endDate: "2026-11-12"
travelers: "2"
consent: true
extra:
  phone: "+351 900 000 000"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := readFormFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "Ana Souza" || !f.Consent || f.StartDate != "2026-11-02" || f.Extra["phone"] == "" {
		t.Errorf("form = %+v", f)
	}

	if _, err := readFormFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("want error for missing file")
	}
}

func TestDatesAllowed(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name       string
		start, end string
		want       bool
		msg        string
	}{
		{"future", "2026-11-02", "2026-11-12", true, ""},
		{"today", "2026-10-19", "2026-10-19", true, ""},
		{"past", "1999-01-01", "1999-01-02", false, domain.MsgPastDate},
		{"free text", "next friday", "someday", false, domain.MsgInvalidDate},
		{"end before start", "2026-11-12", "2026-11-02", false, domain.MsgEndBeforeStart},
		{"missing end", "2026-11-02", "", true, ""},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		p := terminal.NewPresenter(&buf)
		got := datesAllowed(p, domain.FormState{StartDate: c.start, EndDate: c.end}, now)
		if got != c.want {
			t.Errorf("%s: datesAllowed = %v, want %v", c.name, got, c.want)
		}
		if msg, _, _ := p.Current(); msg != c.msg {
			t.Errorf("%s: feedback = %q, want %q", c.name, msg, c.msg)
		}
	}
}
