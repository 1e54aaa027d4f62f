package sales

import (
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
)

// DateLayout formato de las fechas de reporte (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// DayRange es un día calendario en una zona horaria: [From, To] cubre 00:00:00 a 23:59:59.999999.
type DayRange struct {
	Date string
	From time.Time
	To   time.Time
}

// ResolveDay interpreta fecha (YYYY-MM-DD) en loc. Si fecha está vacía usa el día de now en loc.
func ResolveDay(fecha string, loc *time.Location, now time.Time) (DayRange, error) {
	if loc == nil {
		loc = time.UTC
	}
	var start time.Time
	if fecha == "" {
		n := now.In(loc)
		start = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	} else {
		d, err := time.ParseInLocation(DateLayout, fecha, loc)
		if err != nil {
			return DayRange{}, domain.Invalid("La fecha debe tener formato YYYY-MM-DD")
		}
		start = d
	}
	return DayRange{
		Date: start.Format(DateLayout),
		From: start,
		To:   start.AddDate(0, 0, 1).Add(-time.Microsecond),
	}, nil
}
