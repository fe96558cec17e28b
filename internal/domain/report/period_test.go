package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockpro-api/internal/domain/report"
)

func TestParsePeriod(t *testing.T) {
	cases := map[string]report.Period{
		"week":    report.PeriodWeek,
		"month":   report.PeriodMonth,
		"year":    report.PeriodYear,
		"quarter": report.PeriodQuarter,
		"":        report.PeriodMonth,
		"decade":  report.PeriodMonth,
		"WEEK":    report.PeriodMonth,
		" week ":  report.PeriodMonth,
		"Year":    report.PeriodMonth,
	}
	for in, want := range cases {
		assert.Equal(t, want, report.ParsePeriod(in), "token %q", in)
	}
}

func TestResolvePeriodStart_Limites(t *testing.T) {
	now := time.Date(2024, time.August, 17, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, now.Add(-7*24*time.Hour), report.ResolvePeriodStart(report.PeriodWeek, now))
	assert.Equal(t, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), report.ResolvePeriodStart(report.PeriodMonth, now))
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), report.ResolvePeriodStart(report.PeriodQuarter, now))
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), report.ResolvePeriodStart(report.PeriodYear, now))
	// token desconocido = month
	assert.Equal(t, report.ResolvePeriodStart(report.PeriodMonth, now), report.ResolvePeriodStart(report.Period("x"), now))
}

func TestResolvePeriodStart_TrimestresYZona(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	quarters := map[time.Month]time.Month{
		time.January: time.January, time.March: time.January,
		time.April: time.April, time.June: time.April,
		time.September: time.July, time.October: time.October, time.December: time.October,
	}
	for m, want := range quarters {
		now := time.Date(2025, m, 10, 1, 0, 0, 0, loc)
		got := report.ResolvePeriodStart(report.PeriodQuarter, now)
		assert.Equal(t, time.Date(2025, want, 1, 0, 0, 0, 0, loc), got, "mes %s", m)
		assert.Equal(t, loc, got.Location())
	}
}

// El inicio del periodo nunca retrocede cuando avanza now.
func TestResolvePeriodStart_Monotonico(t *testing.T) {
	periods := []report.Period{report.PeriodWeek, report.PeriodMonth, report.PeriodQuarter, report.PeriodYear}
	base := time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC)
	for _, p := range periods {
		prev := report.ResolvePeriodStart(p, base)
		for h := 1; h < 24*120; h += 7 {
			now := base.Add(time.Duration(h) * time.Hour)
			cur := report.ResolvePeriodStart(p, now)
			assert.False(t, cur.Before(prev), "periodo %s en %s", p, now)
			if p == report.PeriodWeek {
				assert.Equal(t, 7*24*time.Hour, now.Sub(cur))
			}
			prev = cur
		}
	}
}
