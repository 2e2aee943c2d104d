package bspatch_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Joyounger/bsdiff/bspatch"
	"github.com/Joyounger/bsdiff/bstest"
)

func Test_PatchFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "bspatch-file")
	bstest.Must(t, err)
	defer os.RemoveAll(dir)

	old := bstest.RandomData(0xCAFE, 8192)
	newData := bstest.Mutate(old, 11, 2)
	patch := bstest.NaiveDiff(t, old, newData)

	oldPath := filepath.Join(dir, "old.bin")
	patchPath := filepath.Join(dir, "update.bsdiff")
	newPath := filepath.Join(dir, "new.bin")
	bstest.Must(t, ioutil.WriteFile(oldPath, old, 0644))
	bstest.Must(t, ioutil.WriteFile(patchPath, patch, 0644))

	bstest.Must(t, bspatch.PatchFile(oldPath, patchPath, newPath))

	result, err := ioutil.ReadFile(newPath)
	bstest.Must(t, err)
	assert.EqualValues(t, newData, result)
}

func Test_PatchFileFailureLeavesNothing(t *testing.T) {
	dir, err := ioutil.TempDir("", "bspatch-file-fail")
	bstest.Must(t, err)
	defer os.RemoveAll(dir)

	old := bstest.RandomData(0xCAFE, 1024)
	patch := bstest.NaiveDiff(t, old, bstest.Mutate(old, 3, 1))
	patch[0] = 'X'

	oldPath := filepath.Join(dir, "old.bin")
	patchPath := filepath.Join(dir, "update.bsdiff")
	newPath := filepath.Join(dir, "new.bin")
	bstest.Must(t, ioutil.WriteFile(oldPath, old, 0644))
	bstest.Must(t, ioutil.WriteFile(patchPath, patch, 0644))

	err = bspatch.PatchFile(oldPath, patchPath, newPath)
	assert.ErrorIs(t, err, bspatch.ErrCorrupt)

	_, statErr := os.Stat(newPath)
	assert.True(t, os.IsNotExist(statErr))

	// no temp files left behind either
	entries, err := ioutil.ReadDir(dir)
	bstest.Must(t, err)
	assert.Len(t, entries, 2)
}

func Test_PatchFileMissingInputs(t *testing.T) {
	dir, err := ioutil.TempDir("", "bspatch-file-missing")
	bstest.Must(t, err)
	defer os.RemoveAll(dir)

	err = bspatch.PatchFile(
		filepath.Join(dir, "nope.bin"),
		filepath.Join(dir, "nope.bsdiff"),
		filepath.Join(dir, "new.bin"))
	assert.Error(t, err)
	assert.Equal(t, bspatch.KindIO, bspatch.Kind(err))
}

func Test_PatchFileOverwritesExisting(t *testing.T) {
	dir, err := ioutil.TempDir("", "bspatch-file-overwrite")
	bstest.Must(t, err)
	defer os.RemoveAll(dir)

	old := bstest.RandomData(0xD1CE, 512)
	newData := bstest.Mutate(old, 9, 4)
	patch := bstest.NaiveDiff(t, old, newData)

	oldPath := filepath.Join(dir, "old.bin")
	patchPath := filepath.Join(dir, "update.bsdiff")
	newPath := filepath.Join(dir, "new.bin")
	bstest.Must(t, ioutil.WriteFile(oldPath, old, 0644))
	bstest.Must(t, ioutil.WriteFile(patchPath, patch, 0644))
	bstest.Must(t, ioutil.WriteFile(newPath, []byte("stale"), 0644))

	bstest.Must(t, bspatch.PatchFile(oldPath, patchPath, newPath))

	result, err := ioutil.ReadFile(newPath)
	bstest.Must(t, err)
	assert.EqualValues(t, newData, result)
}
