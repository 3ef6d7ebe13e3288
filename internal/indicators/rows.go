package indicators

import (
	"fmt"
	"sort"
	"strings"
)

// Content kinds. Panel ids in the default layout use the same names.
const (
	KindRegime     = "regime"
	KindLiquidity  = "liquidity"
	KindCSD        = "csd"
	KindLPPL       = "lppl"
	KindComponents = "components"
	KindSolar      = "solar"
	KindMeta       = "meta"
)

// Row is one label/value line of panel content.
type Row struct {
	Label string
	Value string
}

const missing = "—"

func num(v *float64, prec int) string {
	if v == nil {
		return missing
	}
	return fmt.Sprintf("%.*f", prec, *v)
}

func billions(v *float64) string {
	if v == nil {
		return missing
	}
	return fmt.Sprintf("$%.1fB", *v)
}

// Rows returns the display rows for a content kind. Unknown kinds and empty
// snapshots yield a single placeholder row.
func Rows(s Snapshot, kind string) []Row {
	if s.Empty() {
		return []Row{{Label: "no data", Value: "run the computation pipeline"}}
	}
	switch kind {
	case KindRegime:
		return []Row{
			{"Composite", fmt.Sprintf("%.1f / 100", s.Regime.Composite)},
			{"Status", s.Regime.Status},
			{"Signal", s.Regime.Signal},
		}
	case KindComponents:
		c := s.Regime.Components
		return []Row{
			{"AR(1) score", fmt.Sprintf("%.1f", c.AR1Score)},
			{"Kendall τ score", fmt.Sprintf("%.1f", c.TauScore)},
			{"LPPL score", fmt.Sprintf("%.1f", c.LPPLScore)},
			{"Liquidity score", fmt.Sprintf("%.1f", c.LiquidityScore)},
		}
	case KindLiquidity:
		l := s.Latest
		return []Row{
			{"As of", l.Date},
			{"Net liquidity", billions(l.NetLiquidity)},
			{"Fed balance sheet", billions(l.BalanceSheet)},
			{"TGA", billions(l.TGA)},
			{"Reverse repo", billions(l.RRP)},
			{"Reserves", billions(l.Reserves)},
			{"S&P 500", num(l.SPX, 2)},
		}
	case KindCSD:
		return []Row{
			{"AR(1)", num(s.CSD.CurrentAR1, 4)},
			{"Variance", num(s.CSD.CurrentVariance, 4)},
			{"Kendall τ", num(s.CSD.KendallTau, 4)},
			{"Status", s.CSD.Status},
		}
	case KindLPPL:
		p := s.LPPL
		bubble := "no"
		if p.IsBubble {
			bubble = "yes"
		}
		tc := missing
		if p.TcDate != nil {
			tc = *p.TcDate
			if p.TcDays != nil {
				tc += fmt.Sprintf(" (%.0fd)", *p.TcDays)
			}
		}
		return []Row{
			{"Bubble", bubble},
			{"Confidence", fmt.Sprintf("%.0f%%", p.Confidence)},
			{"Critical time", tc},
			{"R²", num(p.R2, 4)},
			{"ω", num(p.Omega, 4)},
			{"m", num(p.M, 4)},
			{"Status", p.Status},
		}
	case KindSolar:
		return []Row{
			{"Sunspot number", num(s.Latest.SSN, 0)},
			{"F10.7 flux", num(s.Latest.F107, 1)},
		}
	case KindMeta:
		rows := []Row{
			{"Generated", s.Meta.GeneratedAt},
			{"Range", s.DateRange.Start + " → " + s.DateRange.End},
			{"Records", fmt.Sprintf("%d", s.RecordCount)},
		}
		names := make([]string, 0, len(s.Meta.DataSources))
		for name := range s.Meta.DataSources {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			rows = append(rows, Row{strings.ToUpper(name), s.Meta.DataSources[name].Provider})
		}
		return rows
	}
	return []Row{{Label: kind, Value: missing}}
}
