// Package dataset loads 2-D sample points from CSV or NumPy .npy files and
// writes predictions back as .npy.
//
// Both loaders return the x and y components as single-column matrices, which
// is the shape linear.NewPolynomialRegression expects.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/dfelber/regression/core/matrix"
	"github.com/dfelber/regression/pkg/errors"
)

// Samples holds paired observations.
type Samples struct {
	X *matrix.Matrix
	Y *matrix.Matrix
}

// Len returns the number of samples.
func (s *Samples) Len() int { return s.X.Rows() }

func newSamples(xs, ys []float64) *Samples {
	return &Samples{X: matrix.Column(xs), Y: matrix.Column(ys)}
}

// LoadFile loads samples from path, choosing the format by extension:
// ".npy" for NumPy arrays, anything else as CSV.
func LoadFile(path string) (*Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".npy") {
		s, err := LoadNPY(f)
		return s, errors.Wrapf(err, "load %s", path)
	}
	s, err := LoadCSV(f)
	return s, errors.Wrapf(err, "load %s", path)
}

// LoadCSV reads "x,y" records. The first record is skipped when it does not
// parse as numbers (a header). Blank lines and lines starting with '#' are
// ignored; columns after the second are ignored.
func LoadCSV(r io.Reader) (*Samples, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var xs, ys []float64
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv")
		}
		if len(rec) < 2 {
			return nil, errors.NewShapeError("LoadCSV", [2]int{2, -1}, [2]int{len(rec), 1},
				"record "+strconv.Itoa(line)+" needs an x and a y field")
		}

		x, errX := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if errX != nil || errY != nil {
			if len(xs) == 0 && line == 1 {
				continue // header
			}
			return nil, errors.Wrapf(errors.CombineErrors(errX, errY), "parse csv record %d", line)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	if len(xs) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "csv holds no samples")
	}
	return newSamples(xs, ys), nil
}

// LoadNPY reads a 2-D float array with two columns (x, y) in NumPy .npy format.
func LoadNPY(r io.Reader) (*Samples, error) {
	nr, err := npyio.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "read npy header")
	}

	var d mat.Dense
	if err := nr.Read(&d); err != nil {
		return nil, errors.Wrap(err, "read npy data")
	}

	rows, cols := d.Dims()
	if cols != 2 {
		return nil, errors.NewShapeError("LoadNPY", [2]int{2, -1}, [2]int{cols, rows}, "array must have an x and a y column")
	}
	if rows == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "npy holds no samples")
	}

	xs := mat.Col(nil, 0, &d)
	ys := mat.Col(nil, 1, &d)
	return newSamples(xs, ys), nil
}

// WriteNPY writes an n×2 float64 array of (x, prediction) rows. x and pred
// must be single columns with the same number of rows.
func WriteNPY(w io.Writer, x, pred *matrix.Matrix) error {
	if x.Columns() != 1 || pred.Columns() != 1 || x.Rows() != pred.Rows() {
		return errors.NewShapeError("WriteNPY", [2]int{1, x.Rows()}, [2]int{pred.Columns(), pred.Rows()},
			"x and predictions must be single columns of equal length")
	}
	if x.Rows() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "no predictions to write")
	}

	out, err := x.AppendHorizontal(pred)
	if err != nil {
		return err
	}
	if err := npyio.Write(w, out.Dense()); err != nil {
		return errors.Wrap(err, "write npy")
	}
	return nil
}

// WriteNPYFile is WriteNPY to a newly created file.
func WriteNPYFile(path string, x, pred *matrix.Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return WriteNPY(f, x, pred)
}
