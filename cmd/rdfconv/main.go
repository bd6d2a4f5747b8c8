// Program rdfconv batch-converts RDF documents between the formats this
// module supports, walking a directory tree with a glob pattern and
// processing matches concurrently.
//
// Example usage:
//
//	rdfconv --glob 'testdata/**/*.ttl' --from turtle --to ntriples
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	rdf "github.com/turtlecodec/rdf"
	"github.com/turtlecodec/rdf/rdfglog"
)

var (
	glob        = flag.String("glob", "**/*.ttl", "doublestar glob pattern of files to convert, relative to -root")
	root        = flag.String("root", ".", "directory to walk")
	fromFormat  = flag.String("from", "turtle", "input format: turtle, trig, ntriples, nquads")
	toFormat    = flag.String("to", "ntriples", "output format: turtle, trig, ntriples, nquads")
	suffix      = flag.String("suffix", "", "output filename suffix (e.g. .nt); default derived from -to")
	keepGoing   = flag.Bool("keep-going", false, "report a failing file's error without aborting the others")
	concurrency = flag.Int("concurrency", 0, "max concurrent conversions; 0 means GOMAXPROCS")

	allowDigitInLocalName       = flag.Bool("allow-digit-local-name", false, "permit a local name to start with a digit")
	allowMissingDotAfterPrefix  = flag.Bool("allow-missing-dot-after-prefix", false, "permit a @prefix/@base directive with no trailing dot")
	autoAddCommonPrefixes       = flag.Bool("auto-add-common-prefixes", false, "resolve an undeclared prefix against the well-known table")
	allowPrefixWithoutAtSign    = flag.Bool("allow-prefix-without-at-sign", false, "accept bare PREFIX/BASE (SPARQL style) without a leading @")
	allowMissingFinalDot        = flag.Bool("allow-missing-final-dot", false, "permit a statement to omit its trailing dot before end of input, '}' or the next statement")
	allowIdentifiersWithoutColon = flag.Bool("allow-identifiers-without-colon", false, "resolve a bare identifier as a relative IRI against the base")
)

func parseFormat(s string) (rdf.Format, error) {
	switch strings.ToLower(s) {
	case "turtle", "ttl":
		return rdf.FormatTurtle, nil
	case "trig":
		return rdf.FormatTriG, nil
	case "ntriples", "nt":
		return rdf.FormatNTriples, nil
	case "nquads", "nq":
		return rdf.FormatNQuads, nil
	default:
		return 0, fmt.Errorf("unrecognized format %q", s)
	}
}

func defaultSuffix(f rdf.Format) string {
	switch f {
	case rdf.FormatTurtle:
		return ".ttl"
	case rdf.FormatTriG:
		return ".trig"
	case rdf.FormatNTriples:
		return ".nt"
	case rdf.FormatNQuads:
		return ".nq"
	default:
		return ".out"
	}
}

func parseFlags() rdf.ParseFlags {
	var f rdf.ParseFlags
	if *allowDigitInLocalName {
		f |= rdf.AllowDigitInLocalName
	}
	if *allowMissingDotAfterPrefix {
		f |= rdf.AllowMissingDotAfterPrefix
	}
	if *autoAddCommonPrefixes {
		f |= rdf.AutoAddCommonPrefixes
	}
	if *allowPrefixWithoutAtSign {
		f |= rdf.AllowPrefixWithoutAtSign
	}
	if *allowMissingFinalDot {
		f |= rdf.AllowMissingFinalDot
	}
	if *allowIdentifiersWithoutColon {
		f |= rdf.AllowIdentifiersWithoutColon
	}
	return f
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rdfconv: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	from, err := parseFormat(*fromFormat)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	to, err := parseFormat(*toFormat)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}
	outSuffix := *suffix
	if outSuffix == "" {
		outSuffix = defaultSuffix(to)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(*root, *glob))
	if err != nil {
		return fmt.Errorf("globbing %q: %w", *glob, err)
	}
	glog.Infof("rdfconv: converting %d file(s) matching %q from %s to %s", len(matches), *glob, from, to)

	g := new(errgroup.Group)
	if *concurrency > 0 {
		g.SetLimit(*concurrency)
	} else {
		g.SetLimit(runtime.GOMAXPROCS(0))
	}
	logger := rdfglog.New()

	for _, path := range matches {
		path := path
		g.Go(func() error {
			if err := convertFile(path, outSuffix, from, to, logger); err != nil {
				if *keepGoing {
					glog.Errorf("%s: %v", path, err)
					return nil
				}
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func convertFile(path, outSuffix string, from, to rdf.Format, logger rdf.Logger) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + outSuffix
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	opts := []rdf.DecoderOption{rdf.WithParseFlags(parseFlags()), rdf.WithLogger(logger)}

	var quads []rdf.Quad
	if isQuadFormat(from) {
		dec, err := rdf.NewQuadDecoder(in, from, opts...)
		if err != nil {
			return err
		}
		quads, err = dec.DecodeAll()
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	} else {
		dec, err := rdf.NewTripleDecoder(in, from, opts...)
		if err != nil {
			return err
		}
		triples, err := dec.DecodeAll()
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		for _, t := range triples {
			quads = append(quads, rdf.Quad{Triple: t})
		}
	}

	enc := rdf.NewEncoder(to, rdf.WithEncoderLogger(logger))
	return enc.EncodeDataset(out, rdf.NewDatasetFromQuads(quads...))
}

func isQuadFormat(f rdf.Format) bool {
	return f == rdf.FormatTriG || f == rdf.FormatNQuads
}
