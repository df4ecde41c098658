package main

import (
	"context"
	"fmt"
	"os"
	"petcare/internal/di"
	"petcare/internal/structures"

	flag "github.com/spf13/pflag"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVarP(&flags.ConfigPath, "config", "c", "config/config.yaml", "path to the YAML config file")
	flag.BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug mode")
	flag.Parse()

	app, err := di.InitApp(context.Background(), flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "petcared: %s\n", err)
		os.Exit(1)
	}
	if err = app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "petcared: %s\n", err)
		os.Exit(1)
	}
}
