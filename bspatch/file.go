package bspatch

import (
	"io/ioutil"
	"path/filepath"

	"github.com/Joyounger/bsdiff/counter"
	"github.com/itchio/savior/seeksource"
	"github.com/itchio/screw"
	"github.com/pkg/errors"
)

// PatchFile applies the patch at patchPath to the file at oldPath and
// writes the result to newPath. The output goes to a temporary file in
// newPath's directory first and is renamed into place only on success,
// so a failed attempt never leaves a new file behind.
func (ctx *PatchContext) PatchFile(oldPath string, patchPath string, newPath string) error {
	oldFile, err := screw.Open(oldPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer oldFile.Close()

	oldSource := seeksource.FromFile(oldFile)
	_, err = oldSource.Resume(nil)
	if err != nil {
		return errors.WithStack(err)
	}

	patchFile, err := screw.Open(patchPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer patchFile.Close()

	patchStats, err := patchFile.Stat()
	if err != nil {
		return errors.WithStack(err)
	}

	outFile, err := ioutil.TempFile(filepath.Dir(newPath), ".bspatch-")
	if err != nil {
		return errors.WithStack(err)
	}
	outPath := outFile.Name()

	outWriter := counter.NewWriter(outFile)
	err = ctx.Patch(oldSource, outWriter, patchFile, patchStats.Size())
	if err != nil {
		outFile.Close()
		screw.Remove(outPath)
		return err
	}

	err = outFile.Close()
	if err != nil {
		screw.Remove(outPath)
		return errors.WithStack(err)
	}

	err = screw.Rename(outPath, newPath)
	if err != nil {
		screw.Remove(outPath)
		return errors.WithStack(err)
	}

	if ctx.Consumer != nil {
		ctx.Consumer.Debugf("wrote %d bytes to %s", outWriter.Count(), newPath)
	}

	return nil
}

// PatchFile applies the patch at patchPath to oldPath with default
// settings, writing the result to newPath.
func PatchFile(oldPath string, patchPath string, newPath string) error {
	ctx := &PatchContext{}
	return ctx.PatchFile(oldPath, patchPath, newPath)
}
