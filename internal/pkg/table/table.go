// Package table реализует неизменяемую таблицу со строковыми ячейками и
// операции над ней: фильтр по фасетам, inner join и нормализацию столбца.
package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrRowWidth        = errors.New("row width does not match header")
	ErrNotNumeric      = errors.New("value is not numeric")
	ErrNoValues        = errors.New("column has no numeric values")
)

// Table: упорядоченный набор строк с именованными столбцами.
// Все операции возвращают новую таблицу, исходная не меняется.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

func New(columns []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, ok := index[c]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, c)
		}
		index[c] = i
	}

	copied := make([][]string, len(rows))
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d", ErrRowWidth, i, len(r), len(columns))
		}
		copied[i] = append([]string(nil), r...)
	}

	return &Table{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    copied,
	}, nil
}

// withRows переиспользует заголовок; строки не копируются, поэтому их
// нельзя менять после вызова.
func (t *Table) withRows(rows [][]string) *Table {
	return &Table{columns: t.columns, index: t.index, rows: rows}
}

func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

func (t *Table) col(column string) (int, error) {
	i, ok := t.index[column]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrColumnNotFound, column)
	}
	return i, nil
}

func (t *Table) Value(row int, column string) (string, error) {
	i, err := t.col(column)
	if err != nil {
		return "", err
	}
	return t.rows[row][i], nil
}

// Float разбирает ячейку как число. Пустая ячейка считается пропуском:
// возвращается ok=false без ошибки.
func (t *Table) Float(row int, column string) (v float64, ok bool, err error) {
	i, err := t.col(column)
	if err != nil {
		return 0, false, err
	}
	return parseCell(t.rows[row][i], row, column)
}

func parseCell(cell string, row int, column string) (float64, bool, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: row %d, column %s: %q", ErrNotNumeric, row, column, cell)
	}
	return v, true, nil
}

// Rows отдает копию ячеек в порядке столбцов.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// Records представляет строки как объекты; числовые ячейки становятся
// float64, пустые становятся nil.
func (t *Table) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(t.rows))
	for _, r := range t.rows {
		rec := make(map[string]interface{}, len(t.columns))
		for i, c := range t.columns {
			rec[c] = cellValue(r[i])
		}
		out = append(out, rec)
	}
	return out
}

func cellValue(cell string) interface{} {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return cell
}

// Unique возвращает значения столбца в порядке первого появления.
func (t *Table) Unique(column string) ([]string, error) {
	i, err := t.col(column)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range t.rows {
		if _, ok := seen[r[i]]; ok {
			continue
		}
		seen[r[i]] = struct{}{}
		out = append(out, r[i])
	}
	return out, nil
}

func (t *Table) Select(columns ...string) (*Table, error) {
	idx := make([]int, len(columns))
	for j, c := range columns {
		i, err := t.col(c)
		if err != nil {
			return nil, err
		}
		idx[j] = i
	}

	rows := make([][]string, len(t.rows))
	for k, r := range t.rows {
		row := make([]string, len(idx))
		for j, i := range idx {
			row[j] = r[i]
		}
		rows[k] = row
	}
	return New(columns, rows)
}

// Rename переименовывает столбцы по словарю старое->новое.
func (t *Table) Rename(names map[string]string) (*Table, error) {
	columns := t.Columns()
	for from, to := range names {
		i, err := t.col(from)
		if err != nil {
			return nil, err
		}
		columns[i] = to
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, ok := index[c]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, c)
		}
		index[c] = i
	}
	return &Table{columns: columns, index: index, rows: t.rows}, nil
}

// WithColumn добавляет столбец (или заменяет существующий) значениями values.
func (t *Table) WithColumn(column string, values []string) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("%w: %d values for %d rows", ErrRowWidth, len(values), len(t.rows))
	}

	if i, ok := t.index[column]; ok {
		rows := t.Rows()
		for k := range rows {
			rows[k][i] = values[k]
		}
		return t.withRows(rows), nil
	}

	columns := append(t.Columns(), column)
	rows := make([][]string, len(t.rows))
	for k, r := range t.rows {
		row := make([]string, 0, len(columns))
		row = append(row, r...)
		rows[k] = append(row, values[k])
	}
	return New(columns, rows)
}

func (t *Table) Min(column string) (float64, error) {
	lo, _, err := t.bounds(column)
	return lo, err
}

func (t *Table) Max(column string) (float64, error) {
	_, hi, err := t.bounds(column)
	return hi, err
}

func (t *Table) bounds(column string) (lo, hi float64, err error) {
	i, err := t.col(column)
	if err != nil {
		return 0, 0, err
	}

	found := false
	for k, r := range t.rows {
		v, ok, err := parseCell(r[i], k, column)
		if err != nil {
			return 0, 0, err
		}
		if !ok {
			continue
		}
		if !found || v < lo {
			lo = v
		}
		if !found || v > hi {
			hi = v
		}
		found = true
	}
	if !found {
		return 0, 0, fmt.Errorf("%w: %s", ErrNoValues, column)
	}
	return lo, hi, nil
}
