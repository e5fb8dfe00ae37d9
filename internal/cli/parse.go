package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:     "parse <timestamp>",
	Aliases: []string{"p"},
	Short:   "Render a Unix timestamp as a readable date and time",
	Long: `Render a Unix timestamp as a readable date and time.

The timestamp is interpreted at the selected precision and shown in
the selected zone.

Examples:
  epoch parse 1560762129
  epoch p 1560762129 --utc
  epoch p 1560762129123 --precision ms
  epoch p -- -86400`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	provider, warnings, err := resolveProvider()
	if err != nil {
		return handleOffsetError(err)
	}
	prec, err := resolvePrecision()
	if err != nil {
		return handlePrecisionError(err)
	}

	raw := strings.TrimSpace(args[0])
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return handleErrorMsg(ErrTimestampInvalid,
			fmt.Sprintf("invalid timestamp %q, want a whole number of %ss", raw, prec),
			"Negative timestamps need a -- separator: epoch parse -- -86400")
	}

	t := prec.FromTimestamp(ts, provider.Location())

	if isJSONOutput() {
		outputSuccessWithWarnings(map[string]interface{}{
			"timestamp": ts,
			"time":      prec.Format(t),
			"precision": prec.String(),
		}, warnings, nil)
		return nil
	}

	printWarnings(cmd, warnings)
	fmt.Fprintln(cmd.OutOrStdout(), prec.Format(t))
	return nil
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
