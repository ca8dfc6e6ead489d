package ui

import (
	"fmt"
	"os"

	"github.com/sot/chandra-time/internal/gti"
	"github.com/sot/chandra-time/internal/leapsec"
	"github.com/sot/chandra-time/internal/xtime"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	yellow = "\033[33m"
	green  = "\033[32m"
	red    = "\033[31m"
	cyan   = "\033[36m"
)

type Printer struct{}

func New() *Printer {
	return &Printer{}
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, red+bold+"error: "+reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(os.Stderr, dim+"%s"+reset+"\n", msg)
}

// Result prints a conversion result on stdout; everything else goes to
// stderr so output stays pipeable.
func (p *Printer) Result(value string) {
	fmt.Println(value)
}

func (p *Printer) LeapTable(t *leapsec.Table) {
	entries := t.Entries()
	fmt.Fprintf(os.Stderr, bold+cyan+"leap-second table"+reset+dim+" (%s, %d entries)"+reset+"\n",
		t.Source(), len(entries))
	scratch := xtime.New(t)
	for _, e := range entries {
		date := ""
		if err := scratch.Set(float64(e.MJD), xtime.UTC, xtime.ModifiedJulianDay, nil); err == nil {
			date, _ = scratch.GetDate(xtime.UTC, xtime.FitsDate, 0)
		}
		fmt.Fprintf(os.Stderr, "  MJD %6d  %s  TAI-UTC %5.1f s\n", e.MJD, date, e.Leap)
	}
}

func (p *Printer) LeapReloaded(path string, n int) {
	fmt.Fprintf(os.Stderr, green+bold+"✓ leap table reloaded"+reset+dim+" %s (%d entries)"+reset+"\n", path, n)
}

func (p *Printer) LeapReloadFailed(err error) {
	fmt.Fprintf(os.Stderr, yellow+bold+"⚠ leap table reload failed"+reset+" — %s\n", err)
}

func (p *Printer) Watching(path string) {
	fmt.Fprintf(os.Stderr, dim+"watching %s for changes (ctrl-c to stop)"+reset+"\n", path)
}

func (p *Printer) RangeList(name string, l *gti.RangeList, cal bool) {
	if name != "" {
		fmt.Fprintf(os.Stderr, bold+cyan+"%s"+reset+"\n", name)
	}
	if cal {
		fmt.Print(l.FormatCal())
	} else {
		fmt.Print(l.Format())
	}
}

func (p *Printer) StoredSets(infos []gti.SetInfo) {
	if len(infos) == 0 {
		fmt.Fprintln(os.Stderr, dim+"(no stored range sets)"+reset)
		return
	}
	for _, info := range infos {
		fmt.Fprintf(os.Stderr, "  %-24s %3d range(s)  "+dim+"%s"+reset+"\n",
			info.Name, info.Ranges, info.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}
