// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// wirepb-dump is a tool for decoding the wire format of protocol buffer
// messages with no schema: it prints a tag/wire-type/value trace for
// whatever bytes it's handed, the way internal/cmd/pbdump does for the
// teacher repo, but driven by this module's cursor/wire packages
// instead of full reflective descriptors.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/wirepb/wirepb/cursor"
	"github.com/wirepb/wirepb/wire"
)

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	app := &cli.App{
		Name:  "wirepb-dump",
		Usage: "print a tag/wire-type/value trace of a raw protobuf wire-format message",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "messages",
				Aliases: []string{"m"},
				Usage:   "comma-separated field numbers to recurse into as nested messages",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colorized output",
			},
		},
		ArgsUsage: "[FILE]",
		Action:    run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	var data []byte
	var err error
	if c.Args().Len() > 0 {
		data, err = os.ReadFile(c.Args().First())
	} else {
		data, err = readAllStdin()
	}
	if err != nil {
		return err
	}

	messageFields := parseFieldList(c.String("messages"))
	noColor := c.Bool("no-color")

	dec := cursor.FromBytes(data, cursor.Options{})
	return dumpMessage(dec, 0, messageFields, noColor)
}

func readAllStdin() ([]byte, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return nil, fmt.Errorf("wirepb-dump: no input file given and stdin is a terminal")
	}
	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			break
		}
	}
	return buf, nil
}

func parseFieldList(s string) map[wire.Number]bool {
	out := map[wire.Number]bool{}
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				var n int
				fmt.Sscanf(s[start:i], "%d", &n)
				out[wire.Number(n)] = true
			}
			start = i + 1
		}
	}
	return out
}

// dumpMessage walks dec field-by-field, printing each tag's number, wire
// type, and best-guess decoded value, recursing into fields named in
// asMessage as nested submessages. A group is skipped whole with SkipGroup
// and printed as an empty "{ }"; its fields are not printed.
func dumpMessage(dec *cursor.Decoder, depth int, asMessage map[wire.Number]bool, noColor bool) error {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	for {
		num, typ, err := dec.ReadTag()
		if err != nil {
			return err
		}
		if num == 0 {
			return nil
		}

		switch typ {
		case wire.VarintType:
			v, err := dec.ReadVarint64()
			if err != nil {
				return err
			}
			printField(indent, num, typ, fmt.Sprintf("%d", v), noColor)

		case wire.Fixed32Type:
			v, err := dec.ReadFixed32()
			if err != nil {
				return err
			}
			printField(indent, num, typ, fmt.Sprintf("0x%08x (%v)", v, wire.Float32FromBits(v)), noColor)

		case wire.Fixed64Type:
			v, err := dec.ReadFixed64()
			if err != nil {
				return err
			}
			printField(indent, num, typ, fmt.Sprintf("0x%016x (%v)", v, wire.Float64FromBits(v)), noColor)

		case wire.BytesType:
			if asMessage[num] {
				length, err := dec.ReadLength()
				if err != nil {
					return err
				}
				prior, err := dec.PushLimit(length)
				if err != nil {
					return err
				}
				if err := dec.EnterRecursion(); err != nil {
					dec.PopLimit(prior)
					return err
				}
				printField(indent, num, typ, "{", noColor)
				err = dumpMessage(dec, depth+1, asMessage, noColor)
				dec.ExitRecursion()
				if err != nil {
					dec.PopLimit(prior)
					return err
				}
				dec.PopLimit(prior)
				fmt.Println(indent + "}")
				continue
			}
			raw, err := dec.ReadBytes()
			if err != nil {
				return err
			}
			printField(indent, num, typ, fmt.Sprintf("%q (%d bytes)", wire.LaxUTF8(raw), len(raw)), noColor)

		case wire.StartGroupType:
			printField(indent, num, typ, "{", noColor)
			if err := dec.SkipGroup(num); err != nil {
				return err
			}
			fmt.Println(indent + "}")

		default:
			return fmt.Errorf("wirepb-dump: unhandled wire type %v on field %d", typ, num)
		}
	}
}

func printField(indent string, num wire.Number, typ wire.Type, value string, noColor bool) {
	if noColor {
		fmt.Printf("%s%d (%s): %s\n", indent, num, typ, value)
		return
	}
	fieldColor := color.New(color.FgCyan)
	typeColor := color.New(color.FgYellow)
	fmt.Printf("%s%s (%s): %s\n",
		indent,
		fieldColor.Sprintf("%d", num),
		typeColor.Sprintf("%s", typ),
		value)
}
