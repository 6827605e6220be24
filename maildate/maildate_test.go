package maildate

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantDisplay string
		wantISO     string
	}{
		{
			name:        "absent",
			raw:         "",
			wantDisplay: "N/A",
			wantISO:     "",
		},
		{
			name:        "rfc2822 with offset converts to utc",
			raw:         "Mon, 01 Jan 2024 10:00:00 +0200",
			wantDisplay: "2024-01-01 08:00:00 (UTC)",
			wantISO:     "2024-01-01T08:00:00Z",
		},
		{
			name:        "negative offset",
			raw:         "Tue, 02 Jan 2024 20:30:00 -0500",
			wantDisplay: "2024-01-03 01:30:00 (UTC)",
			wantISO:     "2024-01-03T01:30:00Z",
		},
		{
			name:        "zoneless treated as utc",
			raw:         "Mon, 1 Jan 2024 10:00:00",
			wantDisplay: "2024-01-01 10:00:00 (UTC)",
			wantISO:     "2024-01-01T10:00:00Z",
		},
		{
			name:        "single digit day",
			raw:         "Wed, 3 Jan 2024 01:02:03 +0000",
			wantDisplay: "2024-01-03 01:02:03 (UTC)",
			wantISO:     "2024-01-03T01:02:03Z",
		},
		{
			name:        "unparseable keeps original text",
			raw:         "last tuesday around noon",
			wantDisplay: "last tuesday around noon",
			wantISO:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			display, iso := Normalize(tt.raw)
			if display != tt.wantDisplay {
				t.Errorf("display = %q, want %q", display, tt.wantDisplay)
			}
			if iso != tt.wantISO {
				t.Errorf("iso = %q, want %q", iso, tt.wantISO)
			}
		})
	}
}

func TestParseTruncatesSubseconds(t *testing.T) {
	got, ok := Parse("2024-03-05T06:07:08Z")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if got.Nanosecond() != 0 {
		t.Errorf("expected whole-second precision, got %d ns", got.Nanosecond())
	}
	if got.Location().String() != "UTC" {
		t.Errorf("expected UTC, got %s", got.Location())
	}
}

func TestParseFailure(t *testing.T) {
	if _, ok := Parse("not a date"); ok {
		t.Error("expected parse failure")
	}
	if _, ok := Parse(""); ok {
		t.Error("expected parse failure for empty input")
	}
}
