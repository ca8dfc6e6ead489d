package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sot/chandra-time/internal/config"
	"github.com/sot/chandra-time/internal/gti"
	"github.com/sot/chandra-time/internal/leapsec"
	"github.com/sot/chandra-time/internal/xtime"
)

var (
	gtiOut      string
	gtiCal      bool
	gtiStart    string
	gtiStop     string
	gtiBoundSys string
	gtiBoundFmt string
)

var gtiCmd = &cobra.Command{
	Use:   "gti",
	Short: "Good-time-interval range list algebra",
	Long: "Gti combines lists of time ranges stored as TOML files: union,\n" +
		"intersection, and complement over a bounding range. Named lists can\n" +
		"also be kept in a local catalog database.",
}

var gtiOrCmd = &cobra.Command{
	Use:   "or FILE...",
	Short: "Union of range lists",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := &gti.RangeList{}
		base := newBase()
		for _, path := range args {
			l, _, err := gti.LoadFile(path, base)
			if err != nil {
				return err
			}
			out.OrList(l)
		}
		return emitList(out)
	},
}

var gtiAndCmd = &cobra.Command{
	Use:   "and FILE FILE...",
	Short: "Intersection of range lists",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base := newBase()
		out, _, err := gti.LoadFile(args[0], base)
		if err != nil {
			return err
		}
		for _, path := range args[1:] {
			l, _, err := gti.LoadFile(path, base)
			if err != nil {
				return err
			}
			out = gti.Intersect(out, l)
		}
		return emitList(out)
	},
}

var gtiNotCmd = &cobra.Command{
	Use:   "not FILE",
	Short: "Complement of a range list within a bounding range",
	Long: "Not replaces a range list by its complement clipped to the bounding\n" +
		"range given by --start and --stop. The bounds default to MET seconds;\n" +
		"--bound-sys and --bound-fmt accept them in any system and format the\n" +
		"convert command understands.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		table := loadTable(cfg)
		base := xtime.New(table)
		l, _, err := gti.LoadFile(args[0], base)
		if err != nil {
			return err
		}
		start, err := boundMET(table, gtiStart)
		if err != nil {
			return fmt.Errorf("parsing --start: %w", err)
		}
		stop, err := boundMET(table, gtiStop)
		if err != nil {
			return fmt.Errorf("parsing --stop: %w", err)
		}
		if stop <= start {
			return fmt.Errorf("bounding range needs --start before --stop")
		}
		l.Not(gti.NewRangeMET(base, start, stop))
		return emitList(l)
	},
}

var gtiSumCmd = &cobra.Command{
	Use:   "sum FILE",
	Short: "Print a range list and its total covered time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, name, err := gti.LoadFile(args[0], newBase())
		if err != nil {
			return err
		}
		printer.RangeList(name, l, gtiCal)
		return nil
	},
}

var gtiContainsCmd = &cobra.Command{
	Use:   "contains FILE MET",
	Short: "Check whether an MET instant falls inside a range list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, _, err := gti.LoadFile(args[0], newBase())
		if err != nil {
			return err
		}
		t, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("parsing MET %q: %w", args[1], err)
		}
		if r := l.RangeContaining(t); r != nil {
			printer.Result(fmt.Sprintf("inside [%.3f, %.3f]", r.METStart(), r.METStop()))
			return nil
		}
		printer.Result("outside")
		return nil
	},
}

var gtiSaveCmd = &cobra.Command{
	Use:   "save NAME FILE",
	Short: "Store a range list in the catalog under a name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, _, err := gti.LoadFile(args[1], newBase())
		if err != nil {
			return err
		}
		store, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Save(cmd.Context(), args[0], l)
	},
}

var gtiLoadCmd = &cobra.Command{
	Use:   "load NAME",
	Short: "Fetch a named range list from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		l, err := store.Load(cmd.Context(), args[0], newBase())
		if err != nil {
			return err
		}
		if gtiOut != "" {
			return gti.SaveFile(gtiOut, args[0], l)
		}
		printer.RangeList(args[0], l, gtiCal)
		return nil
	},
}

var gtiListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the range sets stored in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		infos, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		printer.StoredSets(infos)
		return nil
	},
}

var gtiRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete a named range list from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Delete(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(gtiCmd)
	gtiCmd.AddCommand(gtiOrCmd, gtiAndCmd, gtiNotCmd, gtiSumCmd, gtiContainsCmd,
		gtiSaveCmd, gtiLoadCmd, gtiListCmd, gtiRmCmd)

	gtiCmd.PersistentFlags().StringVarP(&gtiOut, "output", "o", "", "write the resulting list to a TOML file instead of printing")
	gtiCmd.PersistentFlags().BoolVar(&gtiCal, "cal", false, "print endpoints as calendar dates")
	gtiNotCmd.Flags().StringVar(&gtiStart, "start", "", "bounding range start")
	gtiNotCmd.Flags().StringVar(&gtiStop, "stop", "", "bounding range stop")
	gtiNotCmd.Flags().StringVar(&gtiBoundSys, "bound-sys", "m", "time system of the bounding range values")
	gtiNotCmd.Flags().StringVar(&gtiBoundFmt, "bound-fmt", "s", "time format of the bounding range values")
	_ = gtiNotCmd.MarkFlagRequired("start")
	_ = gtiNotCmd.MarkFlagRequired("stop")
}

// boundMET parses a bounding range endpoint in the flagged system and format
// and returns it as MET seconds.
func boundMET(table *leapsec.Table, value string) (float64, error) {
	t, err := xtime.ParseValue(table, value, gtiBoundSys, gtiBoundFmt)
	if err != nil {
		return 0, err
	}
	return t.MET(), nil
}

// newBase returns a throwaway instant carrying the current leap-second
// table, used to derive range endpoints.
func newBase() *xtime.Time {
	return xtime.New(loadTable(config.Load()))
}

func openCatalog(ctx context.Context) (*gti.Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	path := config.Load().CatalogPath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}
	return gti.OpenStore(ctx, path)
}

func emitList(l *gti.RangeList) error {
	if gtiOut != "" {
		return gti.SaveFile(gtiOut, "", l)
	}
	printer.RangeList("", l, gtiCal)
	return nil
}
