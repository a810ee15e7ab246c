package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/funvibe/fixed/internal/calc"
	"github.com/funvibe/fixed/internal/manifest"
	"github.com/funvibe/fixed/internal/store"
	"github.com/funvibe/fixed/pkg/fixed"
)

type options struct {
	manifest string
	db       string
	history  int
	trace    bool
}

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	var opts options
	flag.StringVar(&opts.manifest, "manifest", "", "path to manifest (default: search upward from the working directory)")
	flag.StringVar(&opts.db, "db", "", "record the run in this SQLite database")
	flag.IntVar(&opts.history, "history", 0, "print the last N recorded runs (requires -db)")
	flag.BoolVar(&opts.trace, "trace", false, "print running totals of paired and grouped aggregators")
	flag.Parse()

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		log.Printf("fixedcalc: %v", err)
		os.Exit(1)
	}
}

func (o options) validate() error {
	if o.history < 0 {
		return fmt.Errorf("-history must not be negative")
	}
	if o.history > 0 && o.db == "" {
		return fmt.Errorf("-history requires -db")
	}
	return nil
}

func run(ctx context.Context, opts options, w io.Writer) error {
	if err := opts.validate(); err != nil {
		return err
	}

	source, set, revisit, err := load(opts.manifest)
	if err != nil {
		return err
	}
	log.Printf("loaded %s: %d aggregators, %d revisited", source, set.Size(), revisit.Size())

	results, total, err := calc.Run(set, revisit)
	if err != nil {
		return err
	}

	p := newPrinter(w, colorEnabled())
	p.results(results)
	if opts.trace {
		set.Visit(p.trace)
	}
	p.total(total)

	if opts.db == "" {
		return nil
	}

	st, err := store.Open(ctx, opts.db)
	if err != nil {
		return err
	}
	defer st.Close()

	recorded, err := st.Record(ctx, store.Run{Source: source, Total: total, Results: results})
	if err != nil {
		return err
	}
	log.Printf("recorded run %s", recorded.ID)

	if opts.history > 0 {
		runs, err := st.Recent(ctx, opts.history)
		if err != nil {
			return err
		}
		p.history(runs)
	}
	return nil
}

// load resolves the manifest to use. Without one the built-in reference
// configuration is returned.
func load(path string) (string, fixed.HList[calc.Aggregator], fixed.HList[calc.Aggregator], error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fixed.HList[calc.Aggregator]{}, fixed.HList[calc.Aggregator]{}, err
		}
		loc, err := manifest.FindManifest(wd)
		if err != nil {
			return "", fixed.HList[calc.Aggregator]{}, fixed.HList[calc.Aggregator]{}, err
		}
		if loc != nil {
			log.Printf("using %s found %d level(s) above %s", loc.Name, loc.Depth, wd)
			path = loc.Path
		}
	}
	if path == "" {
		set, revisit := calc.Reference()
		return "reference", set, revisit, nil
	}

	m, err := manifest.LoadManifest(path)
	if err != nil {
		return "", fixed.HList[calc.Aggregator]{}, fixed.HList[calc.Aggregator]{}, err
	}
	set, revisit, err := m.Build()
	if err != nil {
		return "", fixed.HList[calc.Aggregator]{}, fixed.HList[calc.Aggregator]{}, fmt.Errorf("%s: %w", path, err)
	}
	return path, set, revisit, nil
}
