package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var configCmd = &cli.Command{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Print the effective app config",
	Action:  cmdShowConfig,
	Flags: []cli.Flag{
		formatFlag,
	},
}

func cmdShowConfig(c *cli.Context) error {
	return encodeOutput(c, cfg)
}

// encodeOutput writes v to stdout in the format selected by the format flag.
func encodeOutput(c *cli.Context, v any) error {
	switch c.String(formatFlag.Name) {
	case formatYAML:
		if err := yaml.NewEncoder(os.Stdout).Encode(v); err != nil {
			return errors.Wrap(err, "error encoding yaml output")
		}
	case formatJSON, "":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "error encoding json output")
		}
	default:
		return errors.Errorf("unsupported output format: %s", c.String(formatFlag.Name))
	}
	return nil
}
