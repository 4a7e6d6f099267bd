package main

import (
	"fmt"
	"os"

	"github.com/LumpsRGood/tablet-use-app/pkg/runtime/terminal"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/config"
)

func main() {
	app, err := config.LoadApp(os.Getenv("TABLET_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Settings:     app.ReportSettings(),
		MappingsPath: app.MappingsPath,
		Output:       os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
