// Command tanhplot renders tanh simulation results as a scatter plot
// with an analytic reference curve overlaid.
//
// The input CSV carries an "in" column (input values) plus one or more
// observed-output columns: dut (device under test), cpu_ref, gpu_ref.
// Gzip-compressed inputs (.csv.gz) are read transparently.
//
//	tanhplot -plot dut,cpu_ref
//	tanhplot -plot dut -sample 1000
//	tanhplot -input build/random_cases.csv.gz -output build/tanh_plot.png
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const referenceSamples = 1000

type curveStyle struct {
	label string
	color color.RGBA
	glyph draw.GlyphDrawer
}

var styles = map[string]curveStyle{
	"dut":     {label: "DUT", color: color.RGBA{B: 255, A: 255}, glyph: draw.CircleGlyph{}},
	"cpu_ref": {label: "CPU Reference", color: color.RGBA{R: 255, A: 255}, glyph: draw.BoxGlyph{}},
	"gpu_ref": {label: "GPU Reference", color: color.RGBA{G: 160, A: 255}, glyph: draw.PyramidGlyph{}},
}

func main() {
	var (
		input  = flag.String("input", "build/random_cases.csv", "input CSV file")
		output = flag.String("output", "build/tanh_plot.png", "output image file")
		plotQ  = flag.String("plot", "dut,cpu_ref", "comma-separated curves to plot (dut, cpu_ref, gpu_ref)")
		sample = flag.Int("sample", 100, "plot every N-th point")
	)
	flag.Parse()

	if err := run(*input, *output, *plotQ, *sample); err != nil {
		fmt.Fprintf(os.Stderr, "tanhplot: %v\n", err)
		os.Exit(1)
	}
}

func run(input, output, plotQ string, sample int) error {
	if sample < 1 {
		sample = 1
	}

	header, rows, err := readResults(input)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d data points from %s\n", len(rows), input)

	inCol := -1
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		if name == "in" {
			inCol = i
			continue
		}
		colIdx[name] = i
	}
	if inCol < 0 {
		return fmt.Errorf("%s: no %q column", input, "in")
	}

	var curves []string
	for _, c := range strings.Split(plotQ, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := colIdx[c]; !ok {
			available := make([]string, 0, len(colIdx))
			for name := range colIdx {
				available = append(available, name)
			}
			sort.Strings(available)
			return fmt.Errorf("curve %q is not available in the data (available: %s)",
				c, strings.Join(available, ", "))
		}
		curves = append(curves, c)
	}
	if len(curves) == 0 {
		return fmt.Errorf("no curves requested")
	}

	// Decimate: plot every sample-th row.
	var sampled [][]float64
	for i := 0; i < len(rows); i += sample {
		sampled = append(sampled, rows[i])
	}
	fmt.Printf("Plotting %d sampled points (every %d-th point)\n", len(sampled), sample)

	p := plot.New()
	p.X.Label.Text = "Input (x)"
	p.Y.Label.Text = "tanh(x)"
	p.Add(plotter.NewGrid())

	labels := make([]string, len(curves))
	for i, c := range curves {
		style, ok := styles[c]
		if !ok {
			style = curveStyle{label: c, color: color.RGBA{A: 255}, glyph: draw.CrossGlyph{}}
		}
		labels[i] = style.label

		pts := make(plotter.XYs, len(sampled))
		for j, row := range sampled {
			pts[j].X = row[inCol]
			pts[j].Y = row[colIdx[c]]
		}

		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = style.color
		s.GlyphStyle.Shape = style.glyph
		s.GlyphStyle.Radius = vg.Points(2)

		p.Add(s)
		p.Legend.Add(style.label, s)
	}
	p.Title.Text = "TANH Function - " + strings.Join(labels, ", ")

	ref, err := referenceLine(rows, inCol)
	if err != nil {
		return err
	}
	p.Add(ref)
	p.Legend.Add("Ideal tanh(x)", ref)

	if err := p.Save(12*vg.Inch, 8*vg.Inch, output); err != nil {
		return err
	}
	fmt.Printf("Plot saved to %s\n", output)
	return nil
}

// referenceLine builds the analytic tanh curve spanning the observed
// input range.
func referenceLine(rows [][]float64, inCol int) (*plotter.Line, error) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		lo = math.Min(lo, row[inCol])
		hi = math.Max(hi, row[inCol])
	}

	pts := make(plotter.XYs, referenceSamples)
	step := (hi - lo) / float64(referenceSamples-1)
	for i := range pts {
		x := lo + float64(i)*step
		pts[i].X = x
		pts[i].Y = math.Tanh(x)
	}

	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.Color = color.RGBA{A: 96}
	l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	return l, nil
}

// readResults reads the results CSV (optionally gzip-compressed) and
// returns the header and numeric rows.
func readResults(path string) ([]string, [][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("file %q not found: run the simulation first to generate it", path)
		}
		return nil, nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		defer zr.Close()
		r = zr
	}

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read header: %w", path, err)
	}

	var rows [][]float64
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: row %d: %w", path, len(rows)+2, err)
		}
		row := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: row %d col %q: %w", path, len(rows)+2, header[i], err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: no data rows", path)
	}

	return header, rows, nil
}
