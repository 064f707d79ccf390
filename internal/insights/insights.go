// Package insights computes spending statistics per category over a trailing
// window of months. Read-only; it feeds the insights endpoint and the
// assistant's context snapshot.
package insights

import (
	"fmt"
	"sort"
	"strings"

	"budgetd/internal/store"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"
)

type CategoryStats struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Months       int     `json:"months_with_spending"`
	TotalOutflow int64   `json:"total_outflow"`
	LastOutflow  int64   `json:"last_month_outflow"`
	MeanOutflow  float64 `json:"mean_outflow"`
	StdDev       float64 `json:"std_dev"`
	// TrendSlope is cents per month from a least-squares fit; positive means
	// spending in this category is growing.
	TrendSlope float64 `json:"trend_slope"`
}

type Report struct {
	WindowMonths int             `json:"window_months"`
	Categories   []CategoryStats `json:"categories"`
}

// Compute aggregates monthly outflow rows into per-category statistics,
// ordered by total spending descending. Totals, month counts, and the
// ordering come from a grouped dataframe aggregation over the raw rows; the
// per-series trend fit runs over each category's month-ordered outflows.
func Compute(rows []store.CategoryOutflow, windowMonths int) (*Report, error) {
	report := &Report{WindowMonths: windowMonths, Categories: []CategoryStats{}}
	if len(rows) == 0 {
		return report, nil
	}

	df := dataframe.LoadStructs(rows)
	if df.Err != nil {
		return nil, fmt.Errorf("load outflow frame: %w", df.Err)
	}
	totals := df.
		GroupBy("category_id").
		Aggregation(
			[]dataframe.AggregationType{dataframe.Aggregation_SUM, dataframe.Aggregation_COUNT},
			[]string{"outflow", "outflow"}).
		Arrange(dataframe.RevSort("outflow_SUM"))
	if totals.Err != nil {
		return nil, fmt.Errorf("aggregate outflows: %w", totals.Err)
	}

	byCategory := map[string][]store.CategoryOutflow{}
	names := map[string]string{}
	for _, r := range rows {
		byCategory[r.CategoryID] = append(byCategory[r.CategoryID], r)
		names[r.CategoryID] = r.CategoryName
	}

	ids := totals.Col("category_id").Records()
	sums := totals.Col("outflow_SUM").Float()
	counts := totals.Col("outflow_COUNT").Float()

	for i, id := range ids {
		series := byCategory[id]
		sort.Slice(series, func(i, j int) bool {
			if series[i].Year != series[j].Year {
				return series[i].Year < series[j].Year
			}
			return series[i].Month < series[j].Month
		})

		xs := make([]float64, len(series))
		ys := make([]float64, len(series))
		for j, point := range series {
			xs[j] = float64(j)
			ys[j] = float64(point.Outflow)
		}

		cs := CategoryStats{
			CategoryID:   id,
			CategoryName: names[id],
			Months:       int(counts[i]),
			TotalOutflow: int64(sums[i]),
			LastOutflow:  series[len(series)-1].Outflow,
			MeanOutflow:  stat.Mean(ys, nil),
		}
		if len(series) >= 2 {
			cs.StdDev = stat.StdDev(ys, nil)
			_, cs.TrendSlope = stat.LinearRegression(xs, ys, nil, false)
		}
		report.Categories = append(report.Categories, cs)
	}
	return report, nil
}

// Summary renders a one-line digest of the top spending categories for the
// assistant's system prompt.
func Summary(report *Report, top int) string {
	if len(report.Categories) == 0 {
		return ""
	}
	if top > len(report.Categories) {
		top = len(report.Categories)
	}

	parts := make([]string, 0, top)
	for _, c := range report.Categories[:top] {
		direction := "steady"
		switch {
		case c.TrendSlope > 500:
			direction = "rising"
		case c.TrendSlope < -500:
			direction = "falling"
		}
		parts = append(parts, fmt.Sprintf("%s avg %s/mo (%s)", c.CategoryName, formatCents(int64(c.MeanOutflow)), direction))
	}
	return fmt.Sprintf("Top spending over the last %d months: %s.", report.WindowMonths, strings.Join(parts, ", "))
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
