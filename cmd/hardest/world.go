package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hardest-game/internal/registry"
	"github.com/vovakirdan/hardest-game/internal/world"
)

var flagFormat string

var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "Dump or validate world documents",
}

var worldDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print a built-in level as a world document",
	Long: `Print the level chosen with --level (default: classic) in JSON, YAML
or TOML. The output can be edited and served with 'hardest serve --world'.

Examples:
  hardest world dump > level.json
  hardest world dump --format yaml --level practice > practice.yaml`,
	Args: cobra.NoArgs,
	Run:  runWorldDump,
}

var worldCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate world documents",
	Long: `Load every file and report the first problem in each. The format
follows the file extension (.json, .yaml/.yml, .toml).

Exits with status 1 if any file is invalid.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runWorldCheck,
}

func init() {
	worldDumpCmd.Flags().StringVar(&flagFormat, "format", "json", "Output format: json, yaml, toml")
	worldCmd.AddCommand(worldDumpCmd)
	worldCmd.AddCommand(worldCheckCmd)
}

func runWorldDump(_ *cobra.Command, _ []string) {
	format, err := world.ParseFormat(flagFormat)
	if err != nil {
		exitf("Error: %v", err)
	}

	level := flagLevel
	if level == "" {
		level = registry.DefaultLevel
	}
	doc, err := registry.Document(level)
	if err != nil {
		exitf("Error: %v", err)
	}

	data, err := world.Encode(doc, format)
	if err != nil {
		exitf("Error encoding world: %v", err)
	}
	os.Stdout.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Println()
	}
}

func runWorldCheck(_ *cobra.Command, args []string) {
	failed := 0
	for _, path := range args {
		w, err := world.LoadFile(path)
		if err != nil {
			failed++
			var verr world.ValidationError
			if errors.As(err, &verr) {
				fmt.Printf("%s: %s at %s: %s\n", path, verr.Code, verr.Path, verr.Message)
			} else {
				fmt.Printf("%s: %v\n", path, err)
			}
			continue
		}
		fmt.Printf("%s: ok (%d objects, %d polygons, %d moving, %d portals)\n",
			path, len(w.Objects), len(w.PolyObjects), len(w.MovingObjects), len(w.Portals))
	}
	if failed > 0 {
		os.Exit(1)
	}
}
