package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"schedule2ics/config"
	"schedule2ics/extractor"
	"schedule2ics/icalendar"
)

var (
	outputPath string
	configPath string
)

func main() {
	app := cli.NewApp()
	app.Name = "schedule2ics"
	app.Usage = "convert a saved class schedule page into an iCalendar file"
	app.ArgsUsage = "[FILE]"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "output, o",
			Usage:       "path of the .ics file to write (default: input name with .ics extension)",
			Destination: &outputPath,
		},
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "path of the settings file",
			Value:       "config.json",
			Destination: &configPath,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	input := ctx.Args().First()
	if input == "" {
		input = cfg.InputFile
	}

	file, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening schedule page: %w", err)
	}
	defer file.Close()

	meetings, err := extractor.ParseSchedule(file, nil)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", input, err)
	}

	cal, err := icalendar.BuildCalendar(meetings, cfg.CalendarName, cfg.Timezone)
	if err != nil {
		return err
	}

	output := outputPath
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".ics"
	}
	if err := writeCalendar(output, cal.Serialize()); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Printf("Wrote %d events to %s\n", len(cal.Events()), output)
	return nil
}

func writeCalendar(path, serialized string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := file.WriteString(serialized); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
