package heatmap

import (
	"github.com/alexanderramin/tracksheet/internal/aggregate"
)

// Swatch is one rendered heatmap cell.
type Swatch struct {
	Count      int    `json:"count"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// Shade colors every cell of m between base and accent.
func Shade(m aggregate.Matrix, base, accent RGB) [][]Swatch {
	out := make([][]Swatch, len(m.Cells))
	for r, row := range m.Cells {
		out[r] = make([]Swatch, len(row))
		for c, n := range row {
			bg := ColorFor(n, m.MaxCount, base, accent)
			out[r][c] = Swatch{Count: n, Background: bg.Hex(), Foreground: ReadableText(bg)}
		}
	}
	return out
}
