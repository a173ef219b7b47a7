package aggregate

import (
	"github.com/alexanderramin/tracksheet/internal/domain"
)

// Matrix counts activities per discipline (row) and responsible (column).
// Rows and columns appear in order of first appearance.
type Matrix struct {
	Disciplines  []string `json:"disciplines"`
	Responsibles []string `json:"responsibles"`
	Cells        [][]int  `json:"cells"`
	MaxCount     int      `json:"maxCount"`
}

func BuildMatrix(derived []domain.DerivedActivity) Matrix {
	rows := make(map[string]int)
	cols := make(map[string]int)
	m := Matrix{Disciplines: []string{}, Responsibles: []string{}}
	for i := range derived {
		a := &derived[i].Activity
		if _, ok := rows[a.Discipline]; !ok {
			rows[a.Discipline] = len(m.Disciplines)
			m.Disciplines = append(m.Disciplines, a.Discipline)
		}
		if _, ok := cols[a.Responsible]; !ok {
			cols[a.Responsible] = len(m.Responsibles)
			m.Responsibles = append(m.Responsibles, a.Responsible)
		}
	}

	m.Cells = make([][]int, len(m.Disciplines))
	for r := range m.Cells {
		m.Cells[r] = make([]int, len(m.Responsibles))
	}
	for i := range derived {
		a := &derived[i].Activity
		r, c := rows[a.Discipline], cols[a.Responsible]
		m.Cells[r][c]++
		if m.Cells[r][c] > m.MaxCount {
			m.MaxCount = m.Cells[r][c]
		}
	}
	return m
}

// Count returns the cell for discipline and responsible, or 0 when either
// is not part of the matrix.
func (m Matrix) Count(discipline, responsible string) int {
	r := indexOf(m.Disciplines, discipline)
	c := indexOf(m.Responsibles, responsible)
	if r < 0 || c < 0 {
		return 0
	}
	return m.Cells[r][c]
}

func indexOf(xs []string, v string) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}
