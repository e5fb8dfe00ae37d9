package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/epoch/internal/clock"
	"github.com/aidanlsb/epoch/internal/dates"
	"github.com/aidanlsb/epoch/internal/lookup"
	"github.com/aidanlsb/epoch/internal/timedelta"
	"github.com/aidanlsb/epoch/internal/timeunit"
)

var (
	generateBase     string
	generateYmd      string
	generateHms      string
	generateDeltas   []string
	generateTruncate string
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"g"},
	Short:   "Print a Unix timestamp, optionally shifted and truncated",
	Long: `Print a Unix timestamp for now, a preset day, or an explicit date.

The base instant starts from --base or --ymd (falling back to the
current day) and --hms (falling back to midnight when a date was
given, or to the current clock time otherwise). Deltas shift the base
by calendar units; --truncate zeroes everything below one unit.

Examples:
  epoch generate
  epoch g -b tomorrow
  epoch g --ymd 20190617 --hms 090209
  epoch g -d +3day -d -45min
  epoch g -t day
  epoch g -b yesterday -d +12hour --utc`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	provider, warnings, err := resolveProvider()
	if err != nil {
		return handleOffsetError(err)
	}
	prec, err := resolvePrecision()
	if err != nil {
		return handlePrecisionError(err)
	}

	if generateBase != "" && generateYmd != "" {
		return handleErrorMsg(ErrInvalidInput,
			"--base and --ymd are mutually exclusive",
			"Pass a preset day or an explicit date, not both")
	}

	base, err := resolveBaseInstant(provider)
	if err != nil {
		return handleBaseError(err)
	}

	builder := timedelta.NewBuilder()
	for _, raw := range generateDeltas {
		item, parseErr := timedelta.ParseItem(raw)
		if parseErr != nil {
			return handleDeltaError(parseErr)
		}
		builder.Add(item)
	}

	result, err := builder.Build().Apply(base)
	if err != nil {
		return handleError(ErrDateOutOfRange, err,
			"Month and year shifts must land on a real calendar day")
	}

	if generateTruncate != "" {
		unit, findErr := timeunit.Find(generateTruncate)
		if findErr != nil {
			return handleUnitError(findErr)
		}
		result = unit.Truncate(result)
	}

	ts := prec.Timestamp(result)

	if isJSONOutput() {
		outputSuccessWithWarnings(map[string]interface{}{
			"timestamp": ts,
			"time":      prec.Format(result),
			"precision": prec.String(),
		}, warnings, nil)
		return nil
	}

	printWarnings(cmd, warnings)
	fmt.Fprintln(cmd.OutOrStdout(), ts)
	return nil
}

// resolveBaseInstant composes the pre-delta instant from the base,
// ymd, and hms flags in the provider's zone. Errors come back raw;
// runGenerate maps them onto codes.
func resolveBaseInstant(provider *clock.Provider) (time.Time, error) {
	var day time.Time
	haveDay := false

	switch {
	case generateBase != "":
		preset, err := dates.FindPreset(generateBase)
		if err != nil {
			return time.Time{}, fmt.Errorf("base day: %w", err)
		}
		day = preset.Resolve(provider)
		haveDay = true
	case generateYmd != "":
		ymd, err := dates.ParseYmd(generateYmd)
		if err != nil {
			return time.Time{}, err
		}
		day = time.Date(ymd.Year, ymd.Month, ymd.Day, 0, 0, 0, 0, provider.Location())
		haveDay = true
	default:
		day = provider.Today()
	}

	if generateHms != "" {
		hms, err := dates.ParseHms(generateHms)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(day.Year(), day.Month(), day.Day(),
			hms.Hour, hms.Minute, hms.Second, 0, provider.Location()), nil
	}

	if haveDay {
		return day, nil
	}
	return provider.Now(), nil
}

func handleBaseError(err error) error {
	var dateErr *dates.DateError
	if errors.As(err, &dateErr) {
		return handleError(ErrDateInvalid, err, "Dates are 8 digits: 20190617")
	}
	var timeErr *dates.TimeError
	if errors.As(err, &timeErr) {
		return handleError(ErrTimeInvalid, err, "Times are HHmmss or H:m:s, like 090209 or 9:2:9")
	}
	return handlePresetError(err)
}

// handleDeltaError maps delta parse failures onto stable codes: bad
// shape or value, unknown unit, or ambiguous unit prefix.
func handleDeltaError(err error) error {
	var formatErr *timedelta.FormatError
	if errors.As(err, &formatErr) {
		return handleError(ErrDeltaInvalid, err, "Write deltas like +3day, -45min or 9h")
	}
	var ambiguous *lookup.AmbiguousError
	if errors.As(err, &ambiguous) {
		return handleError(ErrUnitAmbiguous, err, "Matches: "+strings.Join(ambiguous.Candidates, ", "))
	}
	var notFound *lookup.NotFoundError
	if errors.As(err, &notFound) {
		return handleError(ErrUnitNotFound, err, "Units: "+strings.Join(timeunit.Names(), ", "))
	}
	return handleError(ErrDeltaInvalid, err, "")
}

func handleUnitError(err error) error {
	var ambiguous *lookup.AmbiguousError
	if errors.As(err, &ambiguous) {
		return handleError(ErrUnitAmbiguous, err, "Matches: "+strings.Join(ambiguous.Candidates, ", "))
	}
	return handleError(ErrUnitNotFound, err, "Units: "+strings.Join(timeunit.Names(), ", "))
}

func handlePresetError(err error) error {
	var ambiguous *lookup.AmbiguousError
	if errors.As(err, &ambiguous) {
		return handleError(ErrPresetUnknown, err, "Matches: "+strings.Join(ambiguous.Candidates, ", "))
	}
	return handleError(ErrPresetUnknown, err, "Presets: "+strings.Join(dates.PresetNames(), ", "))
}

func init() {
	generateCmd.Flags().StringVarP(&generateBase, "base", "b", "", "Preset day: today, tomorrow or yesterday (prefixes work)")
	generateCmd.Flags().StringVar(&generateYmd, "ymd", "", "Date as yyyyMMdd, like 20190617")
	generateCmd.Flags().StringVar(&generateHms, "hms", "", "Clock time as HHmmss or H:m:s, like 090209")
	generateCmd.Flags().StringArrayVarP(&generateDeltas, "delta", "d", nil, "Shift by <sign><digits><unit> (can be repeated): -d +3day -d -45min")
	generateCmd.Flags().StringVarP(&generateTruncate, "truncate", "t", "", "Zero out everything below this unit in the result")

	rootCmd.AddCommand(generateCmd)
}
