package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sot/chandra-time/internal/config"
	"github.com/sot/chandra-time/internal/xtime"
)

var (
	convertSysIn      string
	convertFmtIn      string
	convertSysOut     string
	convertFmtOut     string
	convertRefMJD     int64
	convertRefMJDFrac float64
)

var convertCmd = &cobra.Command{
	Use:   "convert VALUE...",
	Short: "Convert an instant between time systems and formats",
	Long: "Convert parses VALUE in the input system and format and renders it in\n" +
		"the output system and format.\n\n" +
		"System codes: m (MET), t (TT), ta or a (TAI), u (UTC).\n" +
		"Format codes: s (seconds), h (hex seconds), n (d:h:m:s), j (JD),\n" +
		"m (MJD), dN (ordinal date), cN (calendar date), fN (FITS date); the\n" +
		"optional N sets seconds decimals. An input format of \"-\" deduces\n" +
		"MJD, JD, or seconds from the value's magnitude.\n\n" +
		"Calendar dates may be given as multiple arguments:\n" +
		"  axtime convert -s u -f c3 2005Aug31 at 23:59:27.816",
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertSysIn, "in-sys", "s", "t", "input time system code")
	convertCmd.Flags().StringVarP(&convertFmtIn, "in-fmt", "f", xtime.FormatAuto, "input time format code")
	convertCmd.Flags().StringVarP(&convertSysOut, "out-sys", "S", "u", "output time system code")
	convertCmd.Flags().StringVarP(&convertFmtOut, "out-fmt", "F", "f", "output time format code")
	convertCmd.Flags().Int64Var(&convertRefMJD, "ref-mjd", 0, "override the reference epoch (integer TT MJD)")
	convertCmd.Flags().Float64Var(&convertRefMJDFrac, "ref-mjd-frac", 0, "fractional part of the reference epoch")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	table := loadTable(cfg)

	// The configured decimal count applies when no explicit output format
	// overrides it.
	fmtOut := convertFmtOut
	if !cmd.Flags().Changed("out-fmt") && cfg.Decimals > 0 {
		fmtOut = fmt.Sprintf("%s%d", convertFmtOut, cfg.Decimals)
	}

	// Calendar dates ("2005Aug31 at 23:59:27.816") span several shell
	// words; the value is all positional arguments joined.
	value := strings.Join(args, " ")

	var ref *xtime.Ref
	if cmd.Flags().Changed("ref-mjd") {
		ref = &xtime.Ref{MJDInt: convertRefMJD, MJDFrac: convertRefMJDFrac}
	}

	out, err := xtime.ConvertWithRef(table, value,
		convertSysIn, convertFmtIn, convertSysOut, fmtOut, ref)
	if err != nil {
		return err
	}
	printer.Result(out)
	return nil
}
