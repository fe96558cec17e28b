package report

import "time"

// Period selector de la ventana del informe.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// ParsePeriod acepta solo los tokens exactos; cualquier otro valor (vacío,
// mayúsculas, espacios) cae en PeriodMonth.
func ParsePeriod(s string) Period {
	switch p := Period(s); p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return p
	}
	return PeriodMonth
}

// ResolvePeriodStart devuelve el inicio de la ventana para now.
// week es una ventana móvil de 7×24h; el resto son límites de calendario
// en la zona horaria de now.
func ResolvePeriodStart(period Period, now time.Time) time.Time {
	loc := now.Location()
	switch period {
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour)
	case PeriodQuarter:
		m := (int(now.Month())-1)/3*3 + 1
		return time.Date(now.Year(), time.Month(m), 1, 0, 0, 0, 0, loc)
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	default:
		return startOfMonth(now)
	}
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
