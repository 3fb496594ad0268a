package table

import (
	"errors"
	"fmt"
	"strconv"
)

// Normalize линейно приводит столбец column к [0,1] по наблюдаемым min и max
// и пишет результат в столбец out: (v - min) / (max - min).
//
// Если max == min, все значения становятся 0. Пустые ячейки остаются
// пустыми. Пустая таблица и столбец без единого числа возвращаются с
// добавленным пустым столбцом out.
func Normalize(t *Table, column, out string) (*Table, error) {
	if !t.Has(column) {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, column)
	}
	values := make([]string, t.Len())

	lo, hi, err := t.bounds(column)
	if errors.Is(err, ErrNoValues) {
		return t.WithColumn(out, values)
	}
	if err != nil {
		return nil, err
	}

	for k := range t.rows {
		v, ok, err := t.Float(k, column)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		n := 0.0
		if hi > lo {
			n = (v - lo) / (hi - lo)
		}
		values[k] = strconv.FormatFloat(n, 'g', -1, 64)
	}

	return t.WithColumn(out, values)
}
