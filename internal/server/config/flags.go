package config

import (
	"flag"
	"io"
	"time"
)

// flagValues holds what was given on the command line. Only flags that were
// actually passed are applied, so they do not reset JSON or env values.
type flagValues struct {
	configFile string

	httpAddr    string
	databaseDSN string
	secretKey   string
	ttlMinutes  int
	bcryptCost  int
	logLevel    string

	set map[string]bool
}

// parseFlags parses server flags.
//
// Supported flags (short forms):
//
//	-c, -config string   path to a JSON config file
//	-a string            HTTP bind address (e.g., ":5000")
//	-d string            database DSN
//	-s string            JWT HMAC secret key
//	-t int               access token validity, minutes
//	-b int               bcrypt cost
//	-l string            log level
func parseFlags(args []string) (*flagValues, error) {
	fv := &flagValues{set: make(map[string]bool)}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&fv.configFile, "config", "", "path to config file")
	fs.StringVar(&fv.configFile, "c", "", "path to config file (short)")
	fs.StringVar(&fv.httpAddr, "a", "", "address and port to run server")
	fs.StringVar(&fv.databaseDSN, "d", "", "database DSN")
	fs.StringVar(&fv.secretKey, "s", "", "secret key")
	fs.IntVar(&fv.ttlMinutes, "t", 0, "access token validity duration (in minutes)")
	fs.IntVar(&fv.bcryptCost, "b", 0, "bcrypt cost")
	fs.StringVar(&fv.logLevel, "l", "", "log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) { fv.set[f.Name] = true })
	return fv, nil
}

func (fv *flagValues) apply(config *Config) {
	if fv.set["a"] {
		config.HTTPAddr = fv.httpAddr
	}
	if fv.set["d"] {
		config.DatabaseDSN = fv.databaseDSN
	}
	if fv.set["s"] {
		config.SecretKey = fv.secretKey
	}
	if fv.set["t"] {
		config.AccessTokenValidityDuration = time.Duration(fv.ttlMinutes) * time.Minute
	}
	if fv.set["b"] {
		config.BcryptCost = fv.bcryptCost
	}
	if fv.set["l"] {
		config.LogLevel = fv.logLevel
	}
}
