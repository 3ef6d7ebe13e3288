// Package indicators reads the indicator snapshot produced by the daily
// computation pipeline. Values are display-only; nothing here recomputes them.
package indicators

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Snapshot mirrors flr-data.json. Nullable fields are pointers.
type Snapshot struct {
	Meta        Meta       `json:"meta"`
	Regime      Regime     `json:"regime"`
	CSD         CSD        `json:"csd"`
	LPPL        LPPL       `json:"lppl"`
	Latest      Latest     `json:"latest"`
	DateRange   DateRange  `json:"date_range"`
	RecordCount int        `json:"record_count"`
	AuditLog    []AuditRow `json:"audit_log"`
}

type Meta struct {
	GeneratedAt string                `json:"generated_at"`
	Version     string                `json:"version"`
	DataSources map[string]DataSource `json:"data_sources"`
	Methodology map[string]string     `json:"methodology"`
}

type DataSource struct {
	Provider string   `json:"provider"`
	URL      string   `json:"url"`
	Series   []string `json:"series,omitempty"`
}

type Regime struct {
	Composite  float64          `json:"composite"`
	Status     string           `json:"status"`
	Signal     string           `json:"signal"`
	Components RegimeComponents `json:"components"`
}

type RegimeComponents struct {
	AR1Score       float64 `json:"ar1_score"`
	TauScore       float64 `json:"tau_score"`
	LPPLScore      float64 `json:"lppl_score"`
	LiquidityScore float64 `json:"liquidity_score"`
}

// CSD holds the critical-slowing-down (autocorrelation) fields.
type CSD struct {
	CurrentAR1      *float64 `json:"current_ar1"`
	CurrentVariance *float64 `json:"current_variance"`
	KendallTau      *float64 `json:"kendall_tau"`
	Status          string   `json:"status"`
}

// LPPL holds the bubble-detection fields.
type LPPL struct {
	IsBubble   bool     `json:"is_bubble"`
	Confidence float64  `json:"confidence"`
	TcDays     *float64 `json:"tc_days"`
	TcDate     *string  `json:"tc_date"`
	R2         *float64 `json:"r2"`
	Omega      *float64 `json:"omega"`
	M          *float64 `json:"m"`
	Status     string   `json:"status"`
}

type Latest struct {
	Date         string   `json:"date"`
	SPX          *float64 `json:"spx"`
	BalanceSheet *float64 `json:"balance_sheet"`
	TGA          *float64 `json:"tga"`
	RRP          *float64 `json:"rrp"`
	Reserves     *float64 `json:"reserves"`
	NetLiquidity *float64 `json:"net_liquidity"`
	SSN          *float64 `json:"ssn"`
	F107         *float64 `json:"f10.7"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AuditRow struct {
	Timestamp string `json:"timestamp"`
	Operation string `json:"operation"`
	Source    string `json:"source"`
}

// Empty reports whether no snapshot was loaded.
func (s Snapshot) Empty() bool {
	return s.Meta.GeneratedAt == "" && s.RecordCount == 0
}

// Load reads a snapshot from path. A missing file yields an empty snapshot
// and no error, so the dashboard can start before the first computation run.
func Load(path string) (Snapshot, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes snapshot JSON. The pipeline writes with Python's json module,
// which emits bare NaN and Infinity for undefined statistics; those decode as
// null, so the affected fields read as missing.
func Parse(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(nullNonFinite(data), &s); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	return s, nil
}

var nonFinite = [][]byte{[]byte("-Infinity"), []byte("Infinity"), []byte("NaN")}

// nullNonFinite replaces non-finite number tokens outside strings with null.
// data is returned as is when there are none.
func nullNonFinite(data []byte) []byte {
	var out []byte
	last := 0
	inString, escaped := false, false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			continue
		}
		for _, tok := range nonFinite {
			if bytes.HasPrefix(data[i:], tok) {
				out = append(out, data[last:i]...)
				out = append(out, "null"...)
				i += len(tok) - 1
				last = i + 1
				break
			}
		}
	}
	if out == nil {
		return data
	}
	return append(out, data[last:]...)
}
