//vibspec extracts Raman and ROA spectra from ADF outputs.
//
//Usage:
//
//	vibspec -w raman -i molecule.out --freqmin 500 --freqmax 1700 --incoming_field_ev 3.41 [--norm]
//	vibspec -w roa -p x -i r.out,s.out --freqmin 500 --freqmax 1700 --incoming_field_ev 3.41 [--norm]
//
//Every option can also be given as a VIBSPEC_<OPTION> environment variable
//or in a configuration file (--config).
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rmera/vibspec/pipeline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "\n\n   %s\n\n\n", err.Error())
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := newFlagSet()
	v, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if v.GetBool("verbose") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	R, err := requestFromConfig(v)
	if err != nil {
		return err
	}
	log.Debug().Str("analysis", R.Kind.String()).Strs("inputs", R.Inputs).Float64("freqmin", R.FreqMin).Float64("freqmax", R.FreqMax).Float64("incoming_field_ev", R.IncomingFieldEV).Bool("norm", R.Normalize).Msg("starting")
	res, err := pipeline.Run(R, log.Logger)
	if err != nil {
		return err
	}
	log.Info().Int("files", len(res.Files)).Msg("done")
	return nil
}
