package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/appengine-ltd/band-it/internal/cli"
	"github.com/appengine-ltd/band-it/internal/server"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		serve       bool
		saveDir     string
		seed        int64
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&serve, "serve", false, "run the browser game server instead of the terminal game")
	flag.StringVar(&saveDir, "save-dir", "", "directory for the save slot (default: current directory)")
	flag.Int64Var(&seed, "seed", 0, "simulation seed, 0 for random")
	flag.Parse()

	if showVersion {
		fmt.Printf("Band It %s (%s) %s\n", version, commit, date)
		return
	}

	if serve {
		var cfg server.Config
		if err := server.ParseEnv(&cfg); err != nil {
			exitf("config: %v", err)
		}
		if saveDir != "" {
			cfg.SaveDir = saveDir
		}
		if seed != 0 {
			cfg.Seed = seed
		}
		srv, err := server.New(cfg)
		if err != nil {
			exitf("%v", err)
		}
		if err := srv.ListenAndServe(); err != nil {
			exitf("%v", err)
		}
		return
	}

	if saveDir == "" {
		saveDir = "."
	}
	app, err := cli.NewApp(cli.AppConfig{
		SaveDir: saveDir,
		Seed:    seed,
		In:      os.Stdin,
		Out:     os.Stdout,
	})
	if err != nil {
		exitf("%v", err)
	}
	if err := app.Run(); err != nil {
		exitf("%v", err)
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
