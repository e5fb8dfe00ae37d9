package dates

import (
	"errors"
	"testing"
	"time"
)

func TestParseYmd(t *testing.T) {
	tests := []struct {
		text string
		want Ymd
	}{
		{"20190617", Ymd{2019, time.June, 17}},
		{"19000101", Ymd{1900, time.January, 1}},
		{"29991231", Ymd{2999, time.December, 31}},
		{"20200229", Ymd{2020, time.February, 29}},
	}
	for _, tt := range tests {
		got, err := ParseYmd(tt.text)
		if err != nil {
			t.Errorf("ParseYmd(%q) error: %v", tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseYmd(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}
}

func TestParseYmdInvalid(t *testing.T) {
	tests := []string{
		"",
		"2019-06-17",
		"2019617",
		"201906170",
		"18991231", // year below range
		"30000101", // year above range
		"20191317", // month 13
		"20190000",
		"20190632", // day 32
		"20190229", // not a leap year
		"20190431", // no april 31
		"abcdefgh",
	}
	for _, text := range tests {
		_, err := ParseYmd(text)
		var derr *DateError
		if !errors.As(err, &derr) {
			t.Errorf("ParseYmd(%q) error = %v, want DateError", text, err)
		}
	}
}

func TestParseHms(t *testing.T) {
	tests := []struct {
		text string
		want Hms
	}{
		{"112233", Hms{11, 22, 33}},
		{"000000", Hms{0, 0, 0}},
		{"235959", Hms{23, 59, 59}},
		{"11:22:33", Hms{11, 22, 33}},
		{"1:2:3", Hms{1, 2, 3}},
		{"0:0:0", Hms{0, 0, 0}},
		{"23:59:59", Hms{23, 59, 59}},
	}
	for _, tt := range tests {
		got, err := ParseHms(tt.text)
		if err != nil {
			t.Errorf("ParseHms(%q) error: %v", tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHms(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}
}

func TestParseHmsInvalid(t *testing.T) {
	tests := []string{
		"",
		"1122",     // four digits is not a time
		"11223",    // five digits either
		"1122334",  // nor seven
		"242233",   // hour 24
		"116033",   // minute 60
		"112260",   // second 60
		"24:00:00", // hour out of range
		"11:60:00",
		"11:22:60",
		"11:22",    // missing seconds
		"112:2:33", // three-digit field
		"aa:bb:cc",
	}
	for _, text := range tests {
		_, err := ParseHms(text)
		var terr *TimeError
		if !errors.As(err, &terr) {
			t.Errorf("ParseHms(%q) error = %v, want TimeError", text, err)
		}
	}
}
