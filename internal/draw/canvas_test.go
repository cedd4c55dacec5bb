package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestFitAspect(t *testing.T) {
	tests := []struct {
		name               string
		cols, rows         int
		wantCols           int
		wantRows           int
		wantOffC, wantOffR int
	}{
		// 31 usable rows -> 62 pixel rows -> 36 columns for a 350x600 field.
		{"tall terminal", 80, 32, 36, 31, 22, 1},
		// Width bound: 20 columns -> ceil(20*600/350/2) = 18 rows.
		{"narrow terminal", 20, 40, 20, 18, 0, 11},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := FitAspect(tc.cols, tc.rows, 350, 600, 1)
			if l.Cols != tc.wantCols || l.Rows != tc.wantRows || l.OffsetCol != tc.wantOffC || l.OffsetRow != tc.wantOffR {
				t.Errorf("FitAspect = %+v", l)
			}
		})
	}

	if l := FitAspect(80, 1, 350, 600, 1); l.Cols != 0 || l.Rows != 0 {
		t.Errorf("no usable rows should give an empty layout, got %+v", l)
	}
}

func TestCanvasRenderOnlyChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)

	var first bytes.Buffer
	c.FillRect(0, 0, 1, 1)
	c.Render(&first)
	if !strings.ContainsRune(first.String(), BlockUpperHalf) {
		t.Fatalf("first render missing the pixel: %q", first.String())
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Errorf("unchanged canvas should render nothing, got %q", second.String())
	}

	var third bytes.Buffer
	c.Clear()
	c.Render(&third)
	if !strings.ContainsRune(third.String(), ' ') || strings.ContainsRune(third.String(), BlockUpperHalf) {
		t.Errorf("cleared pixel should be erased with a space, got %q", third.String())
	}

	var fourth bytes.Buffer
	c.Invalidate()
	c.Render(&fourth)
	if strings.Count(fourth.String(), " ") != 8 {
		t.Errorf("invalidate should repaint all 8 cells, got %q", fourth.String())
	}
}

func TestCanvasRenderHonorsOffset(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetOffset(3, 2)
	c.FillRect(0, 0, 1, 1)

	var out bytes.Buffer
	c.Render(&out)
	want := "\033[3;4H" + string(BlockUpperHalf)
	if !strings.HasPrefix(out.String(), want) {
		t.Errorf("render = %q, want prefix %q", out.String(), want)
	}
}

func TestFillRectClipsToCanvas(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.FillRect(-10, -10, 100, 100)
	for i, p := range c.pixels {
		if !p {
			t.Fatalf("pixel %d not set", i)
		}
	}
}

func TestRadialPolygon(t *testing.T) {
	pts := RadialPolygon(nil, 10, 10, 5, 0, []float64{1, 1, 1, 1})
	if len(pts) != 4 {
		t.Fatalf("len = %d", len(pts))
	}
	if pts[0].X != 15 || pts[0].Y != 10 {
		t.Errorf("first point = %+v", pts[0])
	}
}

func TestStarFieldDeterministic(t *testing.T) {
	a := StarField(350, 600, 70, 1)
	b := StarField(350, 600, 70, 1)
	if len(a) != 70 {
		t.Fatalf("len = %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("star %d differs: %v vs %v", i, a[i], b[i])
		}
		if a[i].X < 0 || a[i].X >= 350 || a[i].Y < 0 || a[i].Y >= 600 {
			t.Errorf("star %d outside the field: %v", i, a[i])
		}
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 10, 2)
	cw.WriteAt(3, 4, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[6;13Hhi" {
		t.Errorf("output = %q", got)
	}
}
