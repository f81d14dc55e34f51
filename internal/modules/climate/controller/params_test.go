package controller

import (
	"testing"
	"time"
)

func TestParseSpan_SplitsAtFirstUnderscore(t *testing.T) {
	dr, err := parseSpan("2010-10-10_2010-12-24")
	if err != nil {
		t.Fatalf("parseSpan: %v", err)
	}
	if dr.StartRaw != "2010-10-10" || dr.EndRaw != "2010-12-24" {
		t.Errorf("raw = %q/%q", dr.StartRaw, dr.EndRaw)
	}
	if dr.End == nil || !dr.End.Equal(time.Date(2010, 12, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", dr.End)
	}

	// Anything after the first underscore belongs to the end date.
	if _, err := parseSpan("2010-10-10_2010-12-24_x"); err == nil {
		t.Error("parseSpan with trailing segment succeeded")
	}
}

func TestParseStart(t *testing.T) {
	dr, err := parseStart("2016-02-29")
	if err != nil {
		t.Fatalf("parseStart: %v", err)
	}
	if dr.End != nil || dr.Start.Format(time.DateOnly) != "2016-02-29" {
		t.Errorf("dateRange = %+v", dr)
	}
	if _, err := parseStart("2017-02-29"); err == nil {
		t.Error("parseStart accepted a non-existent day")
	}
	if _, err := parseStart(""); err == nil {
		t.Error("parseStart accepted an empty date")
	}
}

func TestParseSpan_ReversedRangeIsValid(t *testing.T) {
	dr, err := parseSpan("2010-10-10_2010-10-09")
	if err != nil {
		t.Fatalf("parseSpan: %v", err)
	}
	if dr.End == nil || dr.End.Format(time.DateOnly) != "2010-10-09" {
		t.Errorf("end = %v; want 2010-10-09", dr.End)
	}
}

func TestDateError_HidesValidatorDetail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"start", func() error { _, err := parseStart("2016-02-30"); return err }(), `invalid start date "2016-02-30" (expected YYYY-MM-DD)`},
		{"end", func() error { _, err := parseSpan("2016-02-01_2016-02-30"); return err }(), `invalid end date "2016-02-30" (expected YYYY-MM-DD)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil || tt.err.Error() != tt.want {
				t.Errorf("error = %v; want %q", tt.err, tt.want)
			}
		})
	}
}
