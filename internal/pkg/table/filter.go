package table

// Predicate задает точное совпадение: столбец -> требуемое значение.
type Predicate map[string]string

// match сообщает, совпадает ли строка со всеми условиями. Условие по
// отсутствующему столбцу не выполняется никогда.
func (t *Table) match(row []string, p Predicate) bool {
	for column, want := range p {
		i, ok := t.index[column]
		if !ok || row[i] != want {
			return false
		}
	}
	return true
}

// Filter оставляет строки, у которых каждый столбец из p равен своему
// значению. Порядок строк сохраняется; отсутствие совпадений дает пустую
// таблицу.
func Filter(t *Table, p Predicate) *Table {
	rows := make([][]string, 0, len(t.rows))
	for _, r := range t.rows {
		if t.match(r, p) {
			rows = append(rows, r)
		}
	}
	return t.withRows(rows)
}

// Exclude возвращает дополнение Filter, то есть строки, не прошедшие p.
func Exclude(t *Table, p Predicate) *Table {
	rows := make([][]string, 0, len(t.rows))
	for _, r := range t.rows {
		if !t.match(r, p) {
			rows = append(rows, r)
		}
	}
	return t.withRows(rows)
}
