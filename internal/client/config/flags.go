package config

import (
	"flag"
	"io"
	"time"
)

type flagValues struct {
	configFile     string
	serverURL      string
	timeoutSeconds int
	tokenFile      string

	set  map[string]bool
	rest []string
}

// parseFlags reads the CLI flags. Parsing stops at the first non-flag
// argument, which starts the command.
func parseFlags(args []string) (*flagValues, error) {
	fv := &flagValues{set: make(map[string]bool)}

	fs := flag.NewFlagSet("userauth", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&fv.configFile, "config", "", "path to config file")
	fs.StringVar(&fv.configFile, "c", "", "path to config file (short)")
	fs.StringVar(&fv.serverURL, "u", "", "base URL of the auth server")
	fs.IntVar(&fv.timeoutSeconds, "t", 0, "request timeout (in seconds)")
	fs.StringVar(&fv.tokenFile, "f", "", "access token file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) { fv.set[f.Name] = true })
	fv.rest = fs.Args()
	return fv, nil
}

func (fv *flagValues) apply(cfg *Config) {
	if fv.set["u"] {
		cfg.ServerURL = fv.serverURL
	}
	if fv.set["t"] {
		cfg.RequestTimeout = time.Duration(fv.timeoutSeconds) * time.Second
	}
	if fv.set["f"] {
		cfg.TokenFile = fv.tokenFile
	}
}
