package pipeline

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/vibspec"
	"github.com/rmera/vibspec/adf"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func testLogger(t *testing.T) zerolog.Logger {
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func ramanLog() string {
	return " Some ADF output\n" + vibspec.RamanHeader + "\n ---------------\n  1   2   1000.0   50.0\n\n"
}

func roaLog(rows string) string {
	return vibspec.ROAHeader + "  Delta(180)\n -------------\n" + rows + "\n"
}

func TestRamanEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "mol.out", ramanLog())
	R := NewRequest(adf.Raman, in)
	R.FreqMin, R.FreqMax = 500, 1700
	R.IncomingFieldEV = 3.41
	R.OutDir = dir
	res, err := Run(R, testLogger(t))
	require.NoError(t, err)

	require.Len(t, res.Sticks, 1)
	want := 50.0 * math.Pow(3.41*8065.54429-1000.0, 4) / 1000.0
	assert.Equal(t, []float64{1000}, res.Sticks[0].Freqs)
	assert.InDelta(t, want, res.Sticks[0].Ints[0], want*1e-12)

	require.Len(t, res.Spectra, 1)
	s := res.Spectra[0]
	require.Equal(t, 1200, s.Len())
	assert.InDelta(t, 1000, s.Freqs[floats.MaxIdx(s.Ints)], 1.0)
	assert.False(t, res.Normalized)

	csv := filepath.Join(dir, "mol_RAMAN.csv")
	png := filepath.Join(dir, "RAMAN_spectrum.png")
	assert.Equal(t, []string{csv, png}, res.Files)
	x, y, err := vibspec.ReadColumns(csv)
	require.NoError(t, err)
	assert.Len(t, x, 1200)
	assert.Equal(t, 500.0, x[0])
	assert.Equal(t, 1700.0, x[1199])
	assert.InDeltaSlice(t, s.Ints, y, 1e-6*floats.Max(s.Ints))
	_, err = os.Stat(png)
	assert.NoError(t, err)
}

func TestRamanNormalizedWithSticks(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "mol.log", ramanLog())
	R := NewRequest(adf.Raman, in)
	R.FreqMin, R.FreqMax = 900, 1100
	R.IncomingFieldEV = 3.41
	R.Normalize = true
	R.Sticks = true
	R.Plot = false
	res, err := Run(R, testLogger(t))
	require.NoError(t, err)
	assert.True(t, res.Normalized)
	assert.InDelta(t, 1.0, res.Spectra[0].MaxAbs(), 1e-12)
	assert.Equal(t, []string{filepath.Join(dir, "mol_RAMAN_NORM.csv"), filepath.Join(dir, "mol_RAMAN_STICKS.csv")}, res.Files)
	fx, fy, err := vibspec.ReadColumns(res.Files[1])
	require.NoError(t, err)
	assert.Equal(t, []float64{1000}, fx)
	assert.InDelta(t, res.Sticks[0].Ints[0], fy[0], 1e-3)
}

func TestROAJointNormalization(t *testing.T) {
	dir := t.TempDir()
	//same mode in both files, the second twice as intense
	a := writeFile(t, dir, "R.out", roaLog("  1   2   1000.0   1.0   0.0   2.0   0.0\n"))
	b := writeFile(t, dir, "S.out", roaLog("  1   2   1000.0   1.0   0.0   -4.0   0.0\n"))
	R := NewRequest(adf.ROA, a, b)
	R.Pol = adf.PolX
	R.FreqMin, R.FreqMax = 500, 1700
	R.IncomingFieldEV = 3.41
	R.Normalize = true
	R.OutDir = dir

	raw, err := Compute(func() Request { r := R; r.Normalize = false; return r }(), testLogger(t))
	require.NoError(t, err)
	require.Len(t, raw.Spectra, 2)
	ratio := raw.Spectra[0].MaxAbs() / raw.Spectra[1].MaxAbs()
	assert.InDelta(t, 0.5, ratio, 1e-12)

	res, err := Run(R, testLogger(t))
	require.NoError(t, err)
	require.True(t, res.Normalized)
	assert.InDelta(t, 0.5, res.Spectra[0].MaxAbs(), 1e-12)
	assert.InDelta(t, 1.0, res.Spectra[1].MaxAbs(), 1e-12)
	assert.InDelta(t, raw.Spectra[1].MaxAbs(), res.Norm, 1e-9*res.Norm)
	//same grid for both
	assert.Equal(t, res.Spectra[0].Freqs, res.Spectra[1].Freqs)
	assert.Equal(t, []string{
		filepath.Join(dir, "R_ROA_x_NORM.csv"),
		filepath.Join(dir, "S_ROA_x_NORM.csv"),
		filepath.Join(dir, "ROA_spectrum_x_NORM.png"),
	}, res.Files)
	for _, f := range res.Files {
		_, err := os.Stat(f)
		assert.NoError(t, err, f)
	}
}

func TestROAEmptyFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.out", "no tables\n")
	R := NewRequest(adf.ROA, a)
	R.Pol = adf.PolBack
	R.FreqMin, R.FreqMax = 500, 510
	R.IncomingFieldEV = 3.41
	R.Normalize = true
	R.Plot = false
	res, err := Run(R, testLogger(t))
	require.NoError(t, err)
	assert.False(t, res.Normalized)
	assert.Equal(t, make([]float64, 10), res.Spectra[0].Ints)
}

func TestRunErrorsLeaveNoFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.out", roaLog("  1   2   1000.0   1.0   0.0   2.0   0.0\n"))
	bad := writeFile(t, dir, "bad.out", roaLog("  1   2   1000.0   1.0   0.0\n"))
	zero := writeFile(t, dir, "zero.out", roaLog("  1   2   0.0   1.0   0.0   2.0   0.0\n"))
	base := NewRequest(adf.ROA)
	base.Pol = adf.PolX
	base.FreqMin, base.FreqMax = 500, 1700
	base.IncomingFieldEV = 3.41
	base.OutDir = dir

	cases := []struct {
		inputs []string
		kind   error
	}{
		{[]string{good, bad}, vibspec.ErrMalformedRow},
		{[]string{good, zero}, vibspec.ErrZeroFrequency},
		{[]string{good, filepath.Join(dir, "missing.out")}, vibspec.ErrMissingFile},
	}
	for _, c := range cases {
		R := base
		R.Inputs = c.inputs
		_, err := Run(R, testLogger(t))
		require.Error(t, err)
		assert.True(t, errors.Is(err, c.kind), err.Error())
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3) //only the inputs
}

func TestValidate(t *testing.T) {
	ok := NewRequest(adf.ROA, "a.out", "b.out")
	ok.Pol = adf.PolZ
	ok.FreqMin, ok.FreqMax = 500, 1700
	ok.IncomingFieldEV = 3.41
	require.NoError(t, ok.Validate())

	mod := func(f func(*Request)) Request {
		R := ok
		R.Inputs = append([]string(nil), ok.Inputs...)
		f(&R)
		return R
	}
	cases := map[string]struct {
		R    Request
		kind error
	}{
		"no pol":       {mod(func(R *Request) { R.Pol = "" }), vibspec.ErrRequest},
		"bad pol":      {mod(func(R *Request) { R.Pol = "diagonal" }), vibspec.ErrPolarization},
		"three inputs": {mod(func(R *Request) { R.Inputs = append(R.Inputs, "c.out") }), vibspec.ErrRequest},
		"raman two":    {mod(func(R *Request) { R.Kind = adf.Raman }), vibspec.ErrRequest},
		"range":        {mod(func(R *Request) { R.FreqMin = 2000 }), vibspec.ErrRange},
		"energy":       {mod(func(R *Request) { R.IncomingFieldEV = 0 }), vibspec.ErrRequest},
		"nan":          {mod(func(R *Request) { R.FreqMax = math.NaN() }), vibspec.ErrRequest},
		"fwhm":         {mod(func(R *Request) { R.Params.FWHM = -1 }), vibspec.ErrRequest},
		"empty name":   {mod(func(R *Request) { R.Inputs[1] = " " }), vibspec.ErrRequest},
		"huge range":   {mod(func(R *Request) { R.FreqMax = 1e19 }), vibspec.ErrRange},
		"same stem":    {mod(func(R *Request) { R.Inputs = []string{"d/mol.out", "d/mol.log"} }), vibspec.ErrRequest},
		"compressed":   {mod(func(R *Request) { R.Inputs = []string{"r.out", "./r.out.gz"} }), vibspec.ErrRequest},
	}
	for name, c := range cases {
		err := c.R.Validate()
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, c.kind), name+": "+err.Error())
	}
}

func TestNames(t *testing.T) {
	R := NewRequest(adf.Raman, "x")
	assert.Equal(t, "dir/mol_RAMAN.csv", R.CSVName("dir/mol.out"))
	assert.Equal(t, "dir/mol_RAMAN_STICKS.csv", R.SticksName("dir/mol.out"))
	assert.Equal(t, "RAMAN_spectrum.png", R.PlotName())
	R.Normalize = true
	assert.Equal(t, "mol_RAMAN_NORM.csv", R.CSVName("mol.out.zst"))
	assert.Equal(t, "RAMAN_spectrum_NORM.png", R.PlotName())

	R = NewRequest(adf.ROA, "x")
	R.Pol = adf.PolBack
	R.OutDir = "plots"
	assert.Equal(t, "mol_ROA_back.csv", R.CSVName("mol.out"))
	assert.Equal(t, "mol_ROA_STICKS_back.csv", R.SticksName("mol.out"))
	assert.Equal(t, filepath.Join("plots", "ROA_spectrum_back.png"), R.PlotName())
	R.Normalize = true
	assert.Equal(t, "mol_ROA_back_NORM.csv", R.CSVName("mol.out"))
}

func TestSameStemInputs(t *testing.T) {
	dir := t.TempDir()
	rows := "  1   2   1000.0   1.0   0.0   2.0   0.0\n"
	a := writeFile(t, dir, "mol.out", roaLog(rows))
	b := writeFile(t, dir, "mol.log", roaLog(rows))
	R := NewRequest(adf.ROA, a, b)
	R.Pol = adf.PolX
	R.FreqMin, R.FreqMax = 500, 1700
	R.IncomingFieldEV = 3.41
	R.Plot = false
	_, err := Run(R, testLogger(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, vibspec.ErrRequest))
	assert.Contains(t, err.Error(), "mol_ROA_x.csv")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	//different directories are fine
	sub := filepath.Join(dir, "other")
	require.NoError(t, os.Mkdir(sub, 0o755))
	R.Inputs = []string{a, writeFile(t, sub, "mol.out", roaLog(rows))}
	res, err := Run(R, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "mol_ROA_x.csv"), filepath.Join(sub, "mol_ROA_x.csv")}, res.Files)
}

func TestMissingOutDir(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "mol.out", ramanLog())
	old := writeFile(t, dir, "mol_RAMAN.csv", "old\n")
	R := NewRequest(adf.Raman, in)
	R.FreqMin, R.FreqMax = 500, 1700
	R.IncomingFieldEV = 3.41
	R.OutDir = filepath.Join(dir, "plots")
	_, err := Run(R, testLogger(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, vibspec.ErrMissingFile))
	b, err := os.ReadFile(old)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(b))
}

func TestFailedRunKeepsOldFiles(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "mol.out", ramanLog())
	old := writeFile(t, dir, "mol_RAMAN.csv", "old\n")
	R := NewRequest(adf.Raman, in)
	R.FreqMin, R.FreqMax = 500, 1700
	R.IncomingFieldEV = 3.41
	R.Sticks = true
	R.OutDir = dir
	//the plot can't be renamed onto a directory
	require.NoError(t, os.Mkdir(R.PlotName(), 0o755))
	_, err := Run(R, testLogger(t))
	require.Error(t, err)
	_, err = os.Stat(old)
	assert.NoError(t, err, "files from earlier runs stay")
	_, err = os.Stat(R.SticksName(in))
	assert.True(t, os.IsNotExist(err), "files created by the failed run go")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
