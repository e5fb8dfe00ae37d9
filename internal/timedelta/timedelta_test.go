package timedelta

import (
	"errors"
	"testing"
	"time"
)

func TestBuildKeepsFieldsInRange(t *testing.T) {
	got := NewBuilder().
		Years(1).Months(2).Days(3).Hours(4).Minutes(5).Seconds(6).Microseconds(7).
		Build()
	want := Delta{years: 1, months: 2, days: 3, hours: 4, minutes: 5, seconds: 6, micros: 7}
	if got != want {
		t.Errorf("Build() = %+v, want %+v", got, want)
	}
}

func TestBuildNormalizesMicroseconds(t *testing.T) {
	tests := []struct {
		micros int
		want   Delta
	}{
		{999_999, Delta{micros: 999_999}},
		{1_000_000, Delta{seconds: 1}},
		{1_000_001, Delta{seconds: 1, micros: 1}},
		{-999_999, Delta{micros: -999_999}},
		{-1_000_000, Delta{seconds: -1}},
		{-1_000_001, Delta{seconds: -1, micros: -1}},
	}
	for _, tt := range tests {
		if got := NewBuilder().Microseconds(tt.micros).Build(); got != tt.want {
			t.Errorf("Microseconds(%d).Build() = %+v, want %+v", tt.micros, got, tt.want)
		}
	}
}

func TestBuildNormalizesSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    Delta
	}{
		{59, Delta{seconds: 59}},
		{60, Delta{minutes: 1}},
		{61, Delta{minutes: 1, seconds: 1}},
		{-59, Delta{seconds: -59}},
		{-60, Delta{minutes: -1}},
	}
	for _, tt := range tests {
		if got := NewBuilder().Seconds(tt.seconds).Build(); got != tt.want {
			t.Errorf("Seconds(%d).Build() = %+v, want %+v", tt.seconds, got, tt.want)
		}
	}
}

func TestBuildNormalizesMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    Delta
	}{
		{59, Delta{minutes: 59}},
		{60, Delta{hours: 1}},
		{-60, Delta{hours: -1}},
	}
	for _, tt := range tests {
		if got := NewBuilder().Minutes(tt.minutes).Build(); got != tt.want {
			t.Errorf("Minutes(%d).Build() = %+v, want %+v", tt.minutes, got, tt.want)
		}
	}
}

func TestBuildNormalizesHours(t *testing.T) {
	tests := []struct {
		hours int
		want  Delta
	}{
		{23, Delta{hours: 23}},
		{24, Delta{days: 1}},
		{-24, Delta{days: -1}},
		{-25, Delta{days: -1, hours: -1}},
	}
	for _, tt := range tests {
		if got := NewBuilder().Hours(tt.hours).Build(); got != tt.want {
			t.Errorf("Hours(%d).Build() = %+v, want %+v", tt.hours, got, tt.want)
		}
	}
}

func TestBuildNeverCarriesDaysIntoMonths(t *testing.T) {
	tests := []int{364, 365, 366, -365, 10_000}
	for _, days := range tests {
		want := Delta{days: int64(days)}
		if got := NewBuilder().Days(days).Build(); got != want {
			t.Errorf("Days(%d).Build() = %+v, want %+v", days, got, want)
		}
	}
}

func TestBuildNormalizesMonths(t *testing.T) {
	tests := []struct {
		months int
		want   Delta
	}{
		{11, Delta{months: 11}},
		{12, Delta{years: 1}},
		{13, Delta{years: 1, months: 1}},
		{-11, Delta{months: -11}},
		{-12, Delta{years: -1}},
		{-25, Delta{years: -2, months: -1}},
	}
	for _, tt := range tests {
		if got := NewBuilder().Months(tt.months).Build(); got != tt.want {
			t.Errorf("Months(%d).Build() = %+v, want %+v", tt.months, got, tt.want)
		}
	}
}

func TestBuildNormalizesEveryStage(t *testing.T) {
	// 2_500_000us -> 2s 500_000us; 132s -> 2min 12s; 72min -> 1h 12min;
	// 31h -> 1d 7h; 41d stays; 14mon -> 1y 2mon.
	got := NewBuilder().
		Months(14).Days(40).Hours(30).Minutes(70).Seconds(130).Microseconds(2_500_000).
		Build()
	want := Delta{years: 1, months: 2, days: 41, hours: 7, minutes: 12, seconds: 12, micros: 500_000}
	if got != want {
		t.Errorf("Build() = %+v, want %+v", got, want)
	}
}

func TestBuildIdempotent(t *testing.T) {
	d := NewBuilder().Months(26).Seconds(3723).Build()
	if again := d.normalized(); again != d {
		t.Errorf("normalized twice = %+v, want %+v", again, d)
	}
}

func TestBuilderAddersAccumulate(t *testing.T) {
	got := NewBuilder().AddDays(1).AddDays(2).AddHours(5).AddHours(-3).Build()
	want := Delta{days: 3, hours: 2}
	if got != want {
		t.Errorf("Build() = %+v, want %+v", got, want)
	}
}

func TestAddMilliseconds(t *testing.T) {
	tests := []struct {
		ms   int
		want Delta
	}{
		{999, Delta{micros: 999_000}},
		{1500, Delta{seconds: 1, micros: 500_000}},
		{-1500, Delta{seconds: -1, micros: -500_000}},
		{1000, Delta{seconds: 1}},
	}
	for _, tt := range tests {
		if got := NewBuilder().AddMilliseconds(tt.ms).Build(); got != tt.want {
			t.Errorf("AddMilliseconds(%d).Build() = %+v, want %+v", tt.ms, got, tt.want)
		}
	}
}

func TestFoldOrderDoesNotMatter(t *testing.T) {
	exprs := []string{"1y", "+2mon", "-3d"}
	forward := NewBuilder()
	backward := NewBuilder()
	for i, s := range exprs {
		item, err := ParseItem(s)
		if err != nil {
			t.Fatalf("ParseItem(%q) error: %v", s, err)
		}
		forward.Add(item)
		rev, err := ParseItem(exprs[len(exprs)-1-i])
		if err != nil {
			t.Fatalf("ParseItem error: %v", err)
		}
		backward.Add(rev)
	}
	if forward.Build() != backward.Build() {
		t.Errorf("fold order changed the delta: %+v vs %+v", forward.Build(), backward.Build())
	}
}

func TestApply(t *testing.T) {
	base := time.Date(2019, time.June, 17, 11, 22, 33, 0, time.UTC)
	tests := []struct {
		name  string
		build func(*Builder) *Builder
		base  time.Time
		want  time.Time
	}{
		{
			name:  "plus one year",
			build: func(b *Builder) *Builder { return b.Years(1) },
			base:  base,
			want:  time.Date(2020, time.June, 17, 11, 22, 33, 0, time.UTC),
		},
		{
			name:  "minus one year",
			build: func(b *Builder) *Builder { return b.Years(-1) },
			base:  base,
			want:  time.Date(2018, time.June, 17, 11, 22, 33, 0, time.UTC),
		},
		{
			name:  "plus seven months crosses year",
			build: func(b *Builder) *Builder { return b.Months(7) },
			base:  base,
			want:  time.Date(2020, time.January, 17, 11, 22, 33, 0, time.UTC),
		},
		{
			name:  "minus six months crosses year",
			build: func(b *Builder) *Builder { return b.Months(-6) },
			base:  base,
			want:  time.Date(2018, time.December, 17, 11, 22, 33, 0, time.UTC),
		},
		{
			name:  "days into next month",
			build: func(b *Builder) *Builder { return b.Days(28) },
			base:  time.Date(2019, time.February, 1, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2019, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "minus one day crosses year",
			build: func(b *Builder) *Builder { return b.Days(-1) },
			base:  time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2018, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "hours cross midnight",
			build: func(b *Builder) *Builder { return b.Hours(13) },
			base:  time.Date(2019, time.June, 17, 22, 0, 0, 0, time.UTC),
			want:  time.Date(2019, time.June, 18, 11, 0, 0, 0, time.UTC),
		},
		{
			name:  "minute wraps day",
			build: func(b *Builder) *Builder { return b.Minutes(1) },
			base:  time.Date(2019, time.June, 17, 23, 59, 0, 0, time.UTC),
			want:  time.Date(2019, time.June, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "microseconds accumulate to a second",
			build: func(b *Builder) *Builder { return b.Microseconds(999_999) },
			base:  time.Date(1, time.January, 1, 0, 0, 0, 1000, time.UTC),
			want:  time.Date(1, time.January, 1, 0, 0, 1, 0, time.UTC),
		},
		{
			name:  "negative microsecond crosses year boundary",
			build: func(b *Builder) *Builder { return b.Microseconds(-1) },
			base:  time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC),
			want:  time.Date(0, time.December, 31, 23, 59, 59, 999999000, time.UTC),
		},
		{
			name:  "year and month together",
			build: func(b *Builder) *Builder { return b.Years(1).Months(-1) },
			base:  time.Date(2020, time.February, 29, 10, 0, 0, 0, time.UTC),
			want:  time.Date(2021, time.January, 29, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "mixed units",
			build: func(b *Builder) *Builder { return b.Years(1).Months(2).Days(-3) },
			base:  base,
			want:  time.Date(2020, time.August, 14, 11, 22, 33, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.build(NewBuilder()).Build().Apply(tt.base)
			if err != nil {
				t.Fatalf("Apply error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Apply = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyDayShiftsBeyondDurationRange(t *testing.T) {
	// time.Duration caps out near 106,752 days; day shifts must not
	// go through it.
	base := time.Date(2019, time.June, 17, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		days int
		want time.Time
	}{
		{
			name: "plus two hundred thousand days",
			days: 200_000,
			want: time.Date(2567, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "minus two hundred thousand days",
			days: -200_000,
			want: time.Date(1471, time.November, 17, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBuilder().Days(tt.days).Build().Apply(base)
			if err != nil {
				t.Fatalf("Apply error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Apply = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyLargeDayShiftMatchesChunkedAddition(t *testing.T) {
	// Splitting the shift into two halves keeps each leg inside
	// time.Duration's range, giving an independent expected value.
	base := time.Date(2019, time.June, 17, 11, 22, 33, 444555000, time.UTC)
	for _, days := range []int{106_751, 106_752, 120_000, -106_751, -106_752, -200_000} {
		half := days / 2
		rest := days - half
		want := base.
			Add(time.Duration(half) * hoursPerDay * time.Hour).
			Add(time.Duration(rest) * hoursPerDay * time.Hour)
		got, err := NewBuilder().Days(days).Build().Apply(base)
		if err != nil {
			t.Fatalf("Days(%d) Apply error: %v", days, err)
		}
		if !got.Equal(want) {
			t.Errorf("Days(%d) Apply = %v, want %v", days, got, want)
		}
	}
}

func TestApplyLargeDayShiftWithMonthShift(t *testing.T) {
	base := time.Date(2019, time.June, 17, 0, 0, 0, 0, time.UTC)
	got, err := NewBuilder().Days(200_000).Months(1).Build().Apply(base)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	want := time.Date(2567, time.February, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestApplyRejectsMissingDates(t *testing.T) {
	tests := []struct {
		name  string
		build func(*Builder) *Builder
		base  time.Time
	}{
		{
			name:  "no november 31",
			build: func(b *Builder) *Builder { return b.Months(1) },
			base:  time.Date(2019, time.October, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "no february 31",
			build: func(b *Builder) *Builder { return b.Months(1) },
			base:  time.Date(2019, time.January, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "leap day next year",
			build: func(b *Builder) *Builder { return b.Years(1) },
			base:  time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "leap day previous year",
			build: func(b *Builder) *Builder { return b.Years(-1) },
			base:  time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build(NewBuilder()).Build().Apply(tt.base)
			var invalid *InvalidDateError
			if !errors.As(err, &invalid) {
				t.Fatalf("Apply error = %v, want InvalidDateError", err)
			}
		})
	}
}

func TestApplyErrorReportsTargetDate(t *testing.T) {
	base := time.Date(2019, time.October, 31, 0, 0, 0, 0, time.UTC)
	_, err := NewBuilder().Months(1).Build().Apply(base)
	var invalid *InvalidDateError
	if !errors.As(err, &invalid) {
		t.Fatalf("Apply error = %v, want InvalidDateError", err)
	}
	if invalid.Year != 2019 || invalid.Month != time.November || invalid.Day != 31 {
		t.Errorf("error date = %04d-%02d-%02d, want 2019-11-31",
			invalid.Year, int(invalid.Month), invalid.Day)
	}
	if got, want := invalid.Error(), "date does not exist: 2019-11-31"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestApplyZeroDelta(t *testing.T) {
	base := time.Date(2019, time.June, 17, 11, 22, 33, 444555000, time.UTC)
	got, err := NewBuilder().Build().Apply(base)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if !got.Equal(base) {
		t.Errorf("Apply = %v, want %v", got, base)
	}
}

func TestApplyKeepsLocation(t *testing.T) {
	loc := time.FixedZone("+09:00", 9*3600)
	base := time.Date(2019, time.June, 17, 11, 22, 33, 0, loc)
	got, err := NewBuilder().Months(1).Build().Apply(base)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if got.Location() != loc {
		t.Errorf("location = %v, want %v", got.Location(), loc)
	}
	want := time.Date(2019, time.July, 17, 11, 22, 33, 0, loc)
	if !got.Equal(want) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestApplyResultIndependentOfFoldOrder(t *testing.T) {
	base := time.Date(2019, time.June, 17, 11, 22, 33, 0, time.UTC)
	orders := [][]string{
		{"1y", "+2mon", "-3d"},
		{"-3d", "1y", "+2mon"},
		{"+2mon", "-3d", "1y"},
	}
	var results []time.Time
	for _, order := range orders {
		b := NewBuilder()
		for _, s := range order {
			item, err := ParseItem(s)
			if err != nil {
				t.Fatalf("ParseItem(%q) error: %v", s, err)
			}
			b.Add(item)
		}
		got, err := b.Build().Apply(base)
		if err != nil {
			t.Fatalf("Apply error: %v", err)
		}
		results = append(results, got)
	}
	for i := 1; i < len(results); i++ {
		if !results[i].Equal(results[0]) {
			t.Errorf("order %v gave %v, order %v gave %v",
				orders[i], results[i], orders[0], results[0])
		}
	}
}
