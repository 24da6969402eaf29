package main

import (
	"fmt"
	"strings"

	"github.com/rmera/vibspec"
	"github.com/rmera/vibspec/adf"
	"github.com/rmera/vibspec/pipeline"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "VIBSPEC"

//keys that must come from a flag, the environment or the config file.
var requiredKeys = []string{"what", "input", "freqmin", "freqmax", "incoming_field_ev"}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("vibspec", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.StringP("what", "w", "", "type of analysis: raman or roa")
	fs.StringSliceP("input", "i", nil, "ADF output to process (roa accepts two, comma-separated or repeated)")
	fs.Float64("freqmin", 0, "minimum frequency of the spectrum (cm-1)")
	fs.Float64("freqmax", 0, "maximum frequency of the spectrum (cm-1)")
	fs.Float64("incoming_field_ev", 0, "incoming field energy (eV)")
	fs.StringP("pol", "p", "", "ROA polarization: "+strings.Join(adf.Polarizations(), ", ")+" (required for roa)")
	fs.BoolP("norm", "n", false, "normalize the spectra by their common absolute maximum")
	fs.Bool("sticks", false, "also write the corrected stick spectra")
	fs.Bool("plot", true, "draw the spectrum into a png file")
	fs.String("outdir", "", "directory for the png file (default: current directory)")
	fs.Float64("fwhm", vibspec.DefaultFWHM, "width of the Lorentzian kernel (cm-1)")
	fs.Float64("ev_to_wavenumbers", vibspec.EV2Wavenumber, "eV to cm-1 conversion factor")
	fs.String("config", "", "configuration file (any format viper reads: yaml, toml, json...)")
	fs.BoolP("verbose", "v", false, "debug output")
	return fs
}

//loadConfig parses args into fs and layers the result with viper:
//flags over VIBSPEC_* environment variables over the config file over
//the flag defaults.
func loadConfig(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading configuration %s: %w", cfg, err)
		}
	}
	return v, nil
}

//requestFromConfig builds the run request from the layered configuration.
func requestFromConfig(v *viper.Viper) (pipeline.Request, error) {
	var R pipeline.Request
	for _, k := range requiredKeys {
		if !v.IsSet(k) {
			return R, vibspec.NewError(vibspec.ErrRequest, "", "missing required option --%s", k).Caller("requestFromConfig")
		}
	}
	kind, err := adf.ParseKind(v.GetString("what"))
	if err != nil {
		return R, err
	}
	inputs := make([]string, 0, 2)
	for _, in := range v.GetStringSlice("input") {
		for _, s := range strings.Split(in, ",") {
			if s = strings.TrimSpace(s); s != "" {
				inputs = append(inputs, s)
			}
		}
	}
	R = pipeline.NewRequest(kind, inputs...)
	R.FreqMin = v.GetFloat64("freqmin")
	R.FreqMax = v.GetFloat64("freqmax")
	R.IncomingFieldEV = v.GetFloat64("incoming_field_ev")
	if kind == adf.ROA {
		R.Pol = adf.Polarization(strings.ToLower(strings.TrimSpace(v.GetString("pol"))))
	}
	R.Normalize = v.GetBool("norm")
	R.Sticks = v.GetBool("sticks")
	R.Plot = v.GetBool("plot")
	R.OutDir = v.GetString("outdir")
	R.Params.FWHM = v.GetFloat64("fwhm")
	R.Params.EV2Wavenumber = v.GetFloat64("ev_to_wavenumbers")
	return R, R.Validate()
}
