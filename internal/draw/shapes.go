package draw

import (
	"math"
	"math/rand"
)

// Layout places a logical playfield of the given aspect inside a terminal,
// keeping reservedRows free at the top for a status line.
type Layout struct {
	Cols, Rows         int // Canvas size in terminal cells
	OffsetCol          int // 0-based column where the canvas starts
	OffsetRow          int // 0-based row where the canvas starts
	TermCols, TermRows int
}

// FitAspect computes the largest canvas with the aspect of logicalW by
// logicalH that fits the terminal. Cells are twice as tall as they are
// wide, and each cell row holds two pixel rows.
func FitAspect(termCols, termRows int, logicalW, logicalH float64, reservedRows int) Layout {
	l := Layout{TermCols: termCols, TermRows: termRows}
	availRows := termRows - reservedRows
	if termCols <= 0 || availRows <= 0 || logicalW <= 0 || logicalH <= 0 {
		return l
	}

	rows := availRows
	cols := int(math.Round(float64(rows*2) * logicalW / logicalH))
	if cols > termCols {
		cols = termCols
		rows = int(math.Ceil(float64(cols) * logicalH / logicalW / 2))
		rows = min(rows, availRows)
	}
	l.Cols = max(cols, 1)
	l.Rows = max(rows, 1)
	l.OffsetCol = (termCols - l.Cols) / 2
	l.OffsetRow = reservedRows + (availRows-l.Rows)/2
	return l
}

// RadialPolygon fills dst with len(factors) points around (cx, cy). Point
// i sits at angle rotation + i*2π/n and distance radius*factors[i].
func RadialPolygon(dst []Point, cx, cy, radius, rotation float64, factors []float64) []Point {
	n := len(factors)
	dst = dst[:0]
	for i, f := range factors {
		a := rotation + float64(i)*2*math.Pi/float64(n)
		dst = append(dst, Point{X: cx + math.Cos(a)*radius*f, Y: cy + math.Sin(a)*radius*f})
	}
	return dst
}

// Triangle returns the three corners of an isosceles triangle inside the
// box (x, y, w, h), pointing up when up is true.
func Triangle(x, y, w, h float64, up bool) []Point {
	if up {
		return []Point{{X: x + w/2, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
	}
	return []Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w/2, Y: y + h}}
}

// StarField scatters n points over a w by h area. The same seed always
// gives the same sky.
func StarField(w, h float64, n int, seed int64) []Point {
	r := rand.New(rand.NewSource(seed))
	stars := make([]Point, n)
	for i := range stars {
		stars[i] = Point{X: r.Float64() * w, Y: r.Float64() * h}
	}
	return stars
}

// ShardFactors outline a jagged ring, used for explosions.
var ShardFactors = []float64{1, 0.55, 0.9, 0.5, 1, 0.6, 0.85, 0.45}
