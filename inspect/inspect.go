// Package inspect walks FITS files and reports on their HDUs.
package inspect

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/rickbassham/fitsinfo/header"
	"github.com/rickbassham/fitsinfo/sexa"
)

// pending tracks which half of an RA/DEC pair was seen last, awaiting
// its partner.
type pending int

const (
	pendingNone pending = iota
	pendingRA
	pendingDEC
)

type Inspector struct {
	out io.Writer
	log zerolog.Logger
}

func New(out io.Writer, log zerolog.Logger) *Inspector {
	return &Inspector{out: out, log: log}
}

// Summary prints a per-HDU summary of each file. If record is non-empty
// its value is reported for every HDU that has it. A failing file is
// reported and skipped; the run continues.
func (ins *Inspector) Summary(files []string, record string) {
	first := true

	for _, name := range files {
		if !header.Recognized(name) {
			ins.log.Warn().Str("file", name).Msg("skipping file without a FITS suffix")
			continue
		}

		if !first {
			fmt.Fprintln(ins.out)
		}
		first = false

		if err := ins.summarize(name, record); err != nil {
			ins.log.Error().Str("file", name).Err(err).Msg("summary failed")
		}
	}
}

func (ins *Inspector) summarize(name, record string) error {
	units, err := header.Units(name)
	if err != nil {
		return err
	}

	plural := "HDUs"
	if len(units) == 1 {
		plural = "HDU"
	}

	fmt.Fprintf(ins.out, "%s: %d %s\n", name, len(units), plural)

	for _, u := range units {
		line := fmt.Sprintf("  #%d %s [%s]: %d cards", u.Index, u.Name, u.Type, u.Block.Len())

		if record != "" {
			if card, ok := u.Block.Lookup(record); ok {
				line += fmt.Sprintf(", %s = %v", record, card.Value)
			} else {
				line += fmt.Sprintf(", %s not found", record)
			}
		}

		if u.HasData() {
			line += fmt.Sprintf(", data shape %v", u.Axes)
		} else {
			line += ", contains no data"
		}

		fmt.Fprintln(ins.out, line)
	}

	return nil
}

// Detail reads one extension's header from each file, printing either
// the whole block or the requested records in order. With useCoords the
// caller fixes records to RA and DEC, which are converted from
// sexagesimal and printed as one decimal-degree pair when adjacent.
func (ins *Inspector) Detail(files []string, ext int, records []string, useCoords, flat bool) {
	for _, name := range files {
		if !header.Recognized(name) {
			ins.log.Warn().Str("file", name).Msg("skipping file without a FITS suffix")
			continue
		}

		if err := ins.detail(name, ext, records, useCoords, flat); err != nil {
			ins.log.Error().Str("file", name).Err(err).Msg("read failed")
		}
	}
}

func (ins *Inspector) detail(name string, ext int, records []string, useCoords, flat bool) error {
	blk, err := header.ReadBlock(name, ext)
	if err != nil {
		return err
	}

	if !flat {
		fmt.Fprintf(ins.out, "%s (extension %d)\n", name, ext)
	}

	if len(records) == 0 {
		for _, c := range blk.Cards() {
			fmt.Fprintf(ins.out, "%-8s= %-29s / %s\n", c.Name, fmt.Sprintf("%v", c.Value), c.Comment)
		}
		fmt.Fprintln(ins.out, "END")

		if !flat {
			fmt.Fprintln(ins.out)
		}

		return nil
	}

	emit := func(format string, args ...interface{}) {
		if flat {
			fmt.Fprintf(ins.out, "%s: ", name)
		} else {
			fmt.Fprint(ins.out, "  ")
		}
		fmt.Fprintf(ins.out, format+"\n", args...)
	}

	state := pendingNone
	var stored float64

	for _, rec := range records {
		card, ok := blk.Lookup(rec)
		if !ok {
			emit("%s does not exist", rec)
			// a gap breaks RA/DEC adjacency
			state = pendingNone
			continue
		}

		if !useCoords {
			emit("%s = %v", rec, card.Value)
			continue
		}

		switch rec {
		case "RA":
			deg, err := sexa.RAToDeg(fmt.Sprint(card.Value))
			if err != nil {
				return err
			}

			if state == pendingDEC {
				emit("RA, DEC = %f, %f deg", deg, stored)
				state = pendingNone
			} else {
				stored = deg
				state = pendingRA
			}

		case "DEC":
			deg, err := sexa.DecToDeg(fmt.Sprint(card.Value))
			if err != nil {
				return err
			}

			if state == pendingRA {
				emit("RA, DEC = %f, %f deg", stored, deg)
				state = pendingNone
			} else {
				stored = deg
				state = pendingDEC
			}

		default:
			return fmt.Errorf("record %s has no coordinate axis", rec)
		}
	}

	if !flat {
		fmt.Fprintln(ins.out)
	}

	return nil
}
