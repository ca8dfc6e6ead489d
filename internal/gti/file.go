package gti

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/sot/chandra-time/internal/xtime"
)

// fileSet is the on-disk TOML shape of a named range list. Endpoints are
// stored as MET seconds and re-derived against the live leap-second
// table on load.
type fileSet struct {
	Version int         `toml:"version"`
	Name    string      `toml:"name,omitempty"`
	Ranges  []fileRange `toml:"range"`
}

type fileRange struct {
	StartMET float64 `toml:"start_met"`
	StopMET  float64 `toml:"stop_met"`
}

// SaveFile writes the list to a TOML file atomically (write temp + rename).
func SaveFile(path, name string, l *RangeList) error {
	set := fileSet{Version: 1, Name: name}
	for _, r := range l.Ranges() {
		set.Ranges = append(set.Ranges, fileRange{
			StartMET: r.METStart(),
			StopMET:  r.METStop(),
		})
	}

	data, err := toml.Marshal(set)
	if err != nil {
		return fmt.Errorf("gti: marshaling range list: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("gti: writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("gti: renaming range file: %w", err)
	}
	return nil
}

// LoadFile reads a TOML range file and rebuilds the list. Endpoint
// instants are derived from base, so they share its leap-second table
// and reference epoch. The stored name is returned alongside the list.
func LoadFile(path string, base *xtime.Time) (*RangeList, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("gti: reading range file: %w", err)
	}

	var set fileSet
	if err := toml.Unmarshal(data, &set); err != nil {
		return nil, "", fmt.Errorf("gti: parsing range file: %w", err)
	}

	l := &RangeList{}
	for _, fr := range set.Ranges {
		l.OrRange(NewRangeMET(base, fr.StartMET, fr.StopMET))
	}
	return l, set.Name, nil
}
