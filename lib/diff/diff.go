// Package diff compares test output against golden files under testdata.
package diff

import (
	"fmt"
	"os"
	"path/filepath"

	"oss.terrastruct.com/diff"
	"oss.terrastruct.com/xdefer"
)

// AcceptEnv names the environment variable that makes Testdata overwrite the
// golden file instead of failing.
const AcceptEnv = "TESTDATA_ACCEPT"

// Testdata writes got to path.got<ext> and diffs it against path.exp<ext>.
// The .got file is removed when they match.
func Testdata(path, ext string, got []byte) (err error) {
	defer xdefer.Errorf(&err, "failed to diff %s%s", path, ext)

	expPath := fmt.Sprintf("%s.exp%s", path, ext)
	gotPath := fmt.Sprintf("%s.got%s", path, ext)

	if err := os.MkdirAll(filepath.Dir(gotPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(gotPath, got, 0600); err != nil {
		return err
	}

	ds, err := diff.Files(expPath, gotPath)
	if err != nil {
		return err
	}
	if ds != "" {
		if os.Getenv(AcceptEnv) != "" {
			return os.Rename(gotPath, expPath)
		}
		return fmt.Errorf("diff (rerun with $%s=1 to accept):\n%s", AcceptEnv, ds)
	}
	return os.Remove(gotPath)
}
