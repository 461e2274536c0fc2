package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/always-cache/ccfield/rfc9111"
)

// inspect decodes the field lines given as arguments and prints the
// canonical value. It returns the exit status.
func inspect(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	field := fs.String("field", "cache-control", "Field to decode: cache-control, age or expires")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	values := fs.Args()
	logger := log.With().Str("field", *field).Strs("values", values).Logger()

	var canonical string
	switch strings.ToLower(*field) {
	case "cache-control":
		cc, err := rfc9111.ParseCacheControl(values)
		if err != nil {
			logger.Error().Err(err).Msg("Invalid field value")
			return 1
		}
		logger.Debug().Interface("extensions", extensionNames(cc)).Bool("empty", cc.IsEmpty()).Msg("Decoded")
		canonical = cc.String()
	case "age":
		age, ok := rfc9111.ParseAge(values)
		if !ok {
			logger.Error().Msg("No valid member, the field is ignored")
			return 1
		}
		canonical = age.String()
	case "expires":
		exp, err := rfc9111.ParseExpires(values)
		if err != nil {
			logger.Error().Err(err).Msg("Invalid field value, it means already expired")
			return 1
		}
		canonical = exp.String()
	default:
		logger.Error().Msg("Unknown field")
		return 2
	}
	fmt.Fprintln(stdout, canonical)
	return 0
}

func extensionNames(cc rfc9111.CacheControl) []string {
	names := make([]string, 0)
	for _, ext := range cc.Extensions() {
		names = append(names, ext.Name())
	}
	return names
}
