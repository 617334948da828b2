package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/weber21w/uzem-spiram/cardgeom"
	"github.com/weber21w/uzem-spiram/diag"
	"github.com/weber21w/uzem-spiram/hostdir"
)

func main() {
	app := cli.App{
		Usage: "Inspect a host directory as the SD card emulator would see it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "geometry",
				Usage: fmt.Sprintf("card geometry preset (%s)", strings.Join(cardgeom.Slugs(), ", ")),
				Value: cardgeom.DefaultSlug,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "toc",
				Usage:     "Dump the synthesized table of contents as CSV",
				ArgsUsage: "DIRECTORY",
				Action:    dumpTOC,
			},
			{
				Name:      "block",
				Usage:     "Hex-dump one 512-byte block of the synthesized image",
				ArgsUsage: "DIRECTORY OFFSET",
				Action:    dumpBlock,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func geometry(c *cli.Context) (cardgeom.Geometry, error) {
	return cardgeom.Get(c.String("geometry"))
}

func dumpTOC(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: sdimage-inspect toc DIRECTORY", 1)
	}
	geom, err := geometry(c)
	if err != nil {
		return err
	}

	entries, err := hostdir.List(c.Args().Get(0), geom)
	if entries == nil && err != nil {
		return err
	}
	if err != nil {
		log.Printf("sdimage-inspect: %s", err)
	}

	csv, err := diag.TOCCSV(entries)
	if err != nil {
		return err
	}
	fmt.Print(csv)
	return nil
}

func dumpBlock(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: sdimage-inspect block DIRECTORY OFFSET", 1)
	}
	geom, err := geometry(c)
	if err != nil {
		return err
	}

	var offset uint32
	if _, err := fmt.Sscanf(c.Args().Get(1), "%d", &offset); err != nil {
		return cli.Exit("OFFSET must be a decimal byte offset", 1)
	}

	img, err := hostdir.Scan(c.Args().Get(0), geom)
	if img == nil && err != nil {
		return err
	}
	if err != nil {
		log.Printf("sdimage-inspect: %s", err)
	}

	img.Seek(offset)
	block := make([]byte, 512)
	for i := range block {
		block[i] = img.ReadByte()
	}
	fmt.Print(diag.HexDump(block))
	return nil
}
