package table

import "fmt"

const DefaultSuffix = "_right"

type JoinOptions struct {
	// Suffix дописывается к неключевым столбцам правой таблицы, имя которых
	// уже занято. По умолчанию DefaultSuffix.
	Suffix string
}

// Join выполняет inner join по столбцу key. Каждая строка left (по порядку)
// соединяется с каждой строкой right с тем же ключом (в порядке right).
// В результате сначала идут столбцы left, затем неключевые столбцы right.
// Строки без пары отбрасываются.
func Join(left, right *Table, key string, opts JoinOptions) (*Table, error) {
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}

	lk, err := left.col(key)
	if err != nil {
		return nil, fmt.Errorf("left: %w", err)
	}
	rk, err := right.col(key)
	if err != nil {
		return nil, fmt.Errorf("right: %w", err)
	}

	columns := left.Columns()
	taken := make(map[string]struct{}, len(columns)+len(right.columns))
	for _, c := range columns {
		taken[c] = struct{}{}
	}

	rightIdx := make([]int, 0, len(right.columns))
	for i, c := range right.columns {
		if i == rk {
			continue
		}
		name := c
		for {
			if _, ok := taken[name]; !ok {
				break
			}
			name += opts.Suffix
		}
		taken[name] = struct{}{}
		columns = append(columns, name)
		rightIdx = append(rightIdx, i)
	}

	// индекс строится по правой таблице, левая проходит по нему
	hashTable := make(map[string][][]string, len(right.rows))
	for _, r := range right.rows {
		hashTable[r[rk]] = append(hashTable[r[rk]], r)
	}

	rows := make([][]string, 0, len(left.rows))
	for _, l := range left.rows {
		for _, r := range hashTable[l[lk]] {
			row := make([]string, 0, len(columns))
			row = append(row, l...)
			for _, i := range rightIdx {
				row = append(row, r[i])
			}
			rows = append(rows, row)
		}
	}

	return New(columns, rows)
}
