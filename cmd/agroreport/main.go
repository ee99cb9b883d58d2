// Command agroreport prints analysis reports over the agrovida database.
//
//	agroreport list
//	agroreport [-v] <report>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rise-and-shine/agrovida/cfgloader"
	"github.com/rise-and-shine/agrovida/internal/config"
	"github.com/rise-and-shine/agrovida/internal/report"
	"github.com/rise-and-shine/agrovida/observability/logger"
	"github.com/rise-and-shine/agrovida/rdb"
	"github.com/uptrace/bun/extra/bundebug"
)

func main() {
	verbose := flag.Bool("v", false, "print executed SQL to stderr")
	flag.Usage = usage
	flag.Parse()

	report.MustValidateRegistry()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	if flag.Arg(0) == "list" {
		for _, n := range report.Names() {
			fmt.Println(n)
		}
		return
	}

	cfg := cfgloader.MustLoad[config.Config](cfgloader.WithSilent())
	logger.SetGlobal(cfg.Logger)
	log := logger.Named("agroreport")

	db, err := rdb.NewBunDB(cfg.Database)
	if err != nil {
		log.Fatalx(err)
	}
	defer db.Close()

	if *verbose {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.WithWriter(os.Stderr),
		))
	}

	cmd := report.NewRunner(db)
	err = cmd.Execute(context.Background(), report.RunInput{Name: flag.Arg(0), Out: os.Stdout})
	if err != nil {
		log.Errorx(err)
		_ = db.Close()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: agroreport [-v] list | <report>\n\nreports:\n")
	for _, n := range report.Names() {
		fmt.Fprintf(flag.CommandLine.Output(), "  %s\n", n)
	}
	flag.PrintDefaults()
}
