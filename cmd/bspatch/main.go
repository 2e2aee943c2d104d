// bspatch reconstructs a new file from an old file and a BSDIFF40
// patch:
//
//	bspatch OLDFILE PATCHFILE NEWFILE
package main

import (
	"fmt"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/itchio/headway/state"
	flag "github.com/spf13/pflag"

	"github.com/Joyounger/bsdiff/bspatch"
)

func main() {
	verbose := flag.BoolP("verbose", "v", false, "print progress messages")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: bspatch [--verbose] OLDFILE PATCHFILE NEWFILE\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(2)
	}
	oldPath := flag.Arg(0)
	patchPath := flag.Arg(1)
	newPath := flag.Arg(2)

	consumer := &state.Consumer{}
	if *verbose {
		consumer.OnMessage = func(level string, message string) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", level, message)
		}
	}

	ctx := &bspatch.PatchContext{Consumer: consumer}
	err := ctx.PatchFile(oldPath, patchPath, newPath)
	if err != nil {
		var report bspatch.Report
		report.Fill(err)
		fmt.Fprintf(os.Stderr, "bspatch: %s\n", report.Message())
		os.Exit(1)
	}

	if *verbose {
		if stats, statErr := os.Stat(newPath); statErr == nil {
			consumer.Infof("wrote %s (%s)", newPath, humanize.IBytes(uint64(stats.Size())))
		}
	}
}
