package cmd

import (
	"os"
	"testing"
)

// chdir changes into dir for the duration of the test and restores the
// previous working directory on cleanup. It mirrors testing.T.Chdir,
// which requires a newer Go toolchain than the one building this module.
func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
