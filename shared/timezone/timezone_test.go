package timezone_test

import (
	"testing"
	"time"

	"cottage/shared/timezone"
)

func TestTimezoneInit(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestToAppTime(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("expected converted time to have a location")
	}

	if !appTime.Equal(utcTime) {
		t.Error("expected conversion to preserve the instant")
	}
}

func TestFormat(t *testing.T) {
	testTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}
}

func TestParseDateOnly(t *testing.T) {
	parsed, err := timezone.ParseDateOnly("2026-09-10")
	if err != nil {
		t.Errorf("ParseDateOnly() failed: %v", err)
	}

	expected := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, parsed)
	}

	if _, err := timezone.ParseDateOnly("10/09/2026"); err == nil {
		t.Error("expected parse error for wrong layout")
	}

	if _, err := timezone.ParseDateOnly("2026-02-30"); err == nil {
		t.Error("expected parse error for impossible date")
	}
}
