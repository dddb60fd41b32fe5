package main

import (
	"os"

	"github.com/IdealAdarsh9/Aadhaar-risk-engine/pkg/risk"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	enrolFlag = &cli.StringSliceFlag{
		Name:     "enrol",
		Usage:    "Path to an enrolment CSV file (repeatable)",
		Required: true,
	}

	demoFlag = &cli.StringSliceFlag{
		Name:     "demo",
		Usage:    "Path to a demographic update CSV file (repeatable)",
		Required: true,
	}

	bioFlag = &cli.StringSliceFlag{
		Name:     "bio",
		Usage:    "Path to a biometric update CSV file (repeatable)",
		Required: true,
	}

	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Path of the scored CSV output (optional, defaults to the configured output_file)",
	}

	scoreCmd = &cli.Command{
		Name:    "score",
		Aliases: []string{"r"},
		Usage:   "Score one batch of enrolment, demographic and biometric CSVs",
		Action:  cmdScore,
		Flags: []cli.Flag{
			enrolFlag,
			demoFlag,
			bioFlag,
			outFlag,
			formatFlag,
		},
	}
)

func cmdScore(c *cli.Context) error {
	enrol, closeEnrol, err := openSources(c.StringSlice(enrolFlag.Name))
	if err != nil {
		return err
	}
	defer closeEnrol()

	demo, closeDemo, err := openSources(c.StringSlice(demoFlag.Name))
	if err != nil {
		return err
	}
	defer closeDemo()

	bio, closeBio, err := openSources(c.StringSlice(bioFlag.Name))
	if err != nil {
		return err
	}
	defer closeBio()

	res, err := processBatch(enrol, demo, bio)
	if err != nil {
		return errors.Wrap(err, "cannot process batch")
	}

	outPath := c.String(outFlag.Name)
	if outPath == "" {
		outPath = cfg.OutputFile
	}

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create output file: %s", outPath)
	}
	defer out.Close()

	if err := risk.WriteCSV(out, res); err != nil {
		return errors.Wrapf(err, "failed to write output file: %s", outPath)
	}

	log.Infof("scored %d records into %s", len(res.Records), outPath)

	return encodeOutput(c, risk.Summarize(res))
}

// openSources opens every path read-only. The returned closer releases all
// files, including on partial failure.
func openSources(paths []string) ([]risk.Source, func(), error) {
	srcs := make([]risk.Source, 0, len(paths))
	files := make([]*os.File, 0, len(paths))

	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, nil, errors.Wrapf(err, "failed to open input file: %s", p)
		}
		files = append(files, f)
		srcs = append(srcs, risk.Source{Name: p, Reader: f})
	}

	return srcs, closeAll, nil
}

// processBatch runs the full pipeline on one batch: the three category
// loads, the (date, pincode) merge, and the risk scoring pass.
func processBatch(enrol, demo, bio []risk.Source) (*risk.Result, error) {
	et, err := risk.LoadEnrolment(enrol)
	if err != nil {
		return nil, err
	}

	dt, err := risk.LoadDemographic(demo)
	if err != nil {
		return nil, err
	}

	bt, err := risk.LoadBiometric(bio)
	if err != nil {
		return nil, err
	}

	merged, err := risk.MergeAll(et, dt, bt)
	if err != nil {
		return nil, err
	}

	return risk.ComputeRisk(merged), nil
}
