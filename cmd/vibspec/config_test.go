package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/vibspec"
	"github.com/rmera/vibspec/adf"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(t *testing.T, args ...string) error {
	t.Helper()
	v, err := loadConfig(newFlagSet(), args)
	if err != nil {
		return err
	}
	_, err = requestFromConfig(v)
	return err
}

func TestFlags(t *testing.T) {
	v, err := loadConfig(newFlagSet(), []string{"-w", "ROA", "-p", "X", "-i", "r.out", "-i", "s.out",
		"--freqmin", "500", "--freqmax", "1700", "--incoming_field_ev", "3.41", "-n", "--plot=false"})
	require.NoError(t, err)
	R, err := requestFromConfig(v)
	require.NoError(t, err)
	assert.Equal(t, adf.ROA, R.Kind)
	assert.Equal(t, adf.PolX, R.Pol)
	assert.Equal(t, []string{"r.out", "s.out"}, R.Inputs)
	assert.Equal(t, 500.0, R.FreqMin)
	assert.Equal(t, 1700.0, R.FreqMax)
	assert.Equal(t, 3.41, R.IncomingFieldEV)
	assert.True(t, R.Normalize)
	assert.False(t, R.Plot)
	assert.False(t, R.Sticks)
	assert.Equal(t, vibspec.DefaultFWHM, R.Params.FWHM)
	assert.Equal(t, vibspec.EV2Wavenumber, R.Params.EV2Wavenumber)
}

func TestCommaInputs(t *testing.T) {
	v, err := loadConfig(newFlagSet(), []string{"-w", "roa", "-p", "back", "-i", "r.out, s.out",
		"--freqmin", "500", "--freqmax", "1700", "--incoming_field_ev", "3.41"})
	require.NoError(t, err)
	R, err := requestFromConfig(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"r.out", "s.out"}, R.Inputs)
	assert.True(t, R.Plot)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("VIBSPEC_FREQMIN", "600")
	t.Setenv("VIBSPEC_FREQMAX", "1800")
	t.Setenv("VIBSPEC_FWHM", "10")
	v, err := loadConfig(newFlagSet(), []string{"-w", "raman", "-i", "mol.out", "--freqmax", "1700", "--incoming_field_ev", "2.5"})
	require.NoError(t, err)
	R, err := requestFromConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 600.0, R.FreqMin)
	//flags win over the environment
	assert.Equal(t, 1700.0, R.FreqMax)
	assert.Equal(t, 10.0, R.Params.FWHM)
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "vibspec.yaml")
	content := `what: raman
input:
  - mol.out
freqmin: 400
freqmax: 1600
incoming_field_ev: 3.41
sticks: true
`
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o644))
	v, err := loadConfig(newFlagSet(), []string{"--config", cfg, "--freqmin", "450"})
	require.NoError(t, err)
	R, err := requestFromConfig(v)
	require.NoError(t, err)
	assert.Equal(t, adf.Raman, R.Kind)
	assert.Equal(t, []string{"mol.out"}, R.Inputs)
	assert.Equal(t, 450.0, R.FreqMin)
	assert.Equal(t, 1600.0, R.FreqMax)
	assert.True(t, R.Sticks)

	_, err = loadConfig(newFlagSet(), []string{"--config", filepath.Join(t.TempDir(), "none.yaml")})
	assert.Error(t, err)
}

func TestBadRequests(t *testing.T) {
	err := request(t, "-w", "raman", "-i", "mol.out", "--freqmin", "500", "--incoming_field_ev", "3.41")
	require.Error(t, err)
	assert.True(t, errors.Is(err, vibspec.ErrRequest))
	assert.Contains(t, err.Error(), "--freqmax")

	err = request(t, "-w", "roa", "-i", "r.out", "--freqmin", "500", "--freqmax", "1700", "--incoming_field_ev", "3.41")
	assert.True(t, errors.Is(err, vibspec.ErrRequest))

	err = request(t, "-w", "roa", "-p", "q", "-i", "r.out", "--freqmin", "500", "--freqmax", "1700", "--incoming_field_ev", "3.41")
	assert.True(t, errors.Is(err, vibspec.ErrPolarization))

	err = request(t, "-w", "ir", "-i", "r.out", "--freqmin", "500", "--freqmax", "1700", "--incoming_field_ev", "3.41")
	assert.True(t, errors.Is(err, vibspec.ErrRequest))

	err = request(t, "-w", "raman", "-i", "mol.out", "--freqmin", "1700", "--freqmax", "500", "--incoming_field_ev", "3.41")
	assert.True(t, errors.Is(err, vibspec.ErrRange))

	assert.Error(t, request(t, "-w", "raman", "stray"))
	assert.Error(t, request(t, "--nosuchflag"))
	assert.True(t, errors.Is(request(t, "--help"), pflag.ErrHelp))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "mol.out")
	content := vibspec.RamanHeader + "\n -----\n  1   2   1000.0   50.0\n\n"
	require.NoError(t, os.WriteFile(in, []byte(content), 0o644))
	err := run([]string{"-w", "raman", "-i", in, "--freqmin", "900", "--freqmax", "1100",
		"--incoming_field_ev", "3.41", "--plot=false"})
	require.NoError(t, err)
	x, y, err := vibspec.ReadColumns(filepath.Join(dir, "mol_RAMAN.csv"))
	require.NoError(t, err)
	assert.Len(t, x, 200)
	assert.Len(t, y, 200)

	err = run([]string{"-w", "raman", "-i", filepath.Join(dir, "missing.out"), "--freqmin", "900",
		"--freqmax", "1100", "--incoming_field_ev", "3.41"})
	assert.True(t, errors.Is(err, vibspec.ErrMissingFile))
}
