package official

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/tartampluch/go-hijri/internal/config"
)

//go:embed data/months.json
var dataFS embed.FS

const embeddedTablePath = "data/months.json"

// Load returns the table shipped with the binary. The embedded file is
// produced by an external data-collection process; this core only parses
// and validates it.
func Load() (*Table, error) {
	raw, err := dataFS.ReadFile(embeddedTablePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTableLoad, err)
	}
	return parse(raw)
}

// LoadFile returns a table read from an override file with the same schema
// as the embedded data: a JSON object keyed by decimal Hijri year, each
// value an ordered array of at most 12 month lengths in {29,30}.
func LoadFile(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTableLoad, err)
	}
	slog.Info(config.MsgTableOverride,
		config.LogKeyComponent, config.CompOfficial,
		config.LogKeyFile, path,
	)
	return parse(raw)
}

// parse decodes and validates the table payload. Validation happens once
// here so the resolver can trust every entry afterwards.
func parse(raw []byte) (*Table, error) {
	var entries map[string][]int
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTableLoad, err)
	}

	months := make(map[int][]int, len(entries))
	for key, seq := range entries {
		year, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%s: year %q: %w", config.ErrTableSyntax, key, err)
		}
		if year < config.MinHijriYear || year > config.MaxHijriYear {
			return nil, fmt.Errorf("%s: year %d out of domain", config.ErrTableSyntax, year)
		}
		if len(seq) == 0 || len(seq) > 12 {
			return nil, fmt.Errorf("%s: year %d has %d months", config.ErrTableSyntax, year, len(seq))
		}
		for i, ml := range seq {
			if ml != 29 && ml != 30 {
				return nil, fmt.Errorf("%s: year %d month %d length %d", config.ErrTableSyntax, year, i+1, ml)
			}
		}
		months[year] = seq
	}

	if len(months) == 0 {
		return nil, fmt.Errorf("%s", config.ErrTableEmpty)
	}

	t := New(months)
	if r, ok := t.CoveredRange(); ok {
		slog.Debug(config.MsgTableLoaded,
			config.LogKeyComponent, config.CompOfficial,
			config.LogKeyYears, len(months),
			config.LogKeyMinYear, r.MinYear,
			config.LogKeyMaxYear, r.MaxYear,
		)
	}
	return t, nil
}
