package analytics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/facturio/facturio-api/internal/application/dto"
	"github.com/facturio/facturio-api/internal/domain"
)

// maxBuckets evita series desmesuradas (p. ej. diez años por día).
const maxBuckets = 1000

var frenchMonths = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// Series acumula importes por intervalo conservando el orden cronológico.
type Series struct {
	interval string
	labels   []string
	index    map[string]int
	amounts  []int64
	total    int64
}

// NewSeries crea todos los intervalos entre start (inclusive) y end (exclusive), a cero.
func NewSeries(interval string, start, end time.Time) (*Series, error) {
	s := &Series{interval: interval, index: map[string]int{}}
	cur, err := truncate(interval, start)
	if err != nil {
		return nil, err
	}
	for cur.Before(end) {
		if len(s.labels) >= maxBuckets {
			return nil, fmt.Errorf("%w: el rango pedido genera más de %d puntos", domain.ErrInvalidInput, maxBuckets)
		}
		label := Label(interval, cur)
		s.index[label] = len(s.labels)
		s.labels = append(s.labels, label)
		s.amounts = append(s.amounts, 0)
		cur = step(interval, cur)
	}
	return s, nil
}

// Add suma amount al intervalo de t. Fuera de rango se añade al final.
func (s *Series) Add(t time.Time, amount int64) {
	label := Label(s.interval, t)
	i, ok := s.index[label]
	if !ok {
		i = len(s.labels)
		s.index[label] = i
		s.labels = append(s.labels, label)
		s.amounts = append(s.amounts, 0)
	}
	s.amounts[i] += amount
	s.total += amount
}

// Total suma de todos los importes añadidos.
func (s *Series) Total() int64 { return s.total }

// Points devuelve la serie en orden.
func (s *Series) Points() []dto.RevenuePointDTO {
	out := make([]dto.RevenuePointDTO, len(s.labels))
	for i, l := range s.labels {
		out[i] = dto.RevenuePointDTO{Label: l, Amount: s.amounts[i]}
	}
	return out
}

// Label etiqueta del intervalo: "02/01/2006" (día), "janv. 2024" (mes), "2024" (año).
func Label(interval string, t time.Time) string {
	switch interval {
	case dto.IntervalDay:
		return t.Format("02/01/2006")
	case dto.IntervalYear:
		return strconv.Itoa(t.Year())
	default:
		return fmt.Sprintf("%s %d", frenchMonths[t.Month()-1], t.Year())
	}
}

func truncate(interval string, t time.Time) (time.Time, error) {
	switch interval {
	case dto.IntervalDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
	case dto.IntervalMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()), nil
	case dto.IntervalYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location()), nil
	}
	return time.Time{}, fmt.Errorf("%w: intervalo %q desconocido", domain.ErrInvalidInput, interval)
}

func step(interval string, t time.Time) time.Time {
	switch interval {
	case dto.IntervalDay:
		return t.AddDate(0, 0, 1)
	case dto.IntervalYear:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// ParseDate acepta RFC 3339 o una fecha "2006-01-02" (medianoche en loc).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q inválida", domain.ErrInvalidInput, s)
	}
	return t, nil
}
