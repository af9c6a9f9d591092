package xexec_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/tikzed/lib/xexec"
)

func TestFindFirst(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exec bits")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "pdflatex")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pdflatex-notes"), []byte("x"), 0644))
	t.Setenv("PATH", dir)

	p, err := xexec.FindFirst("lualatex", "pdflatex")
	require.NoError(t, err)
	assert.Equal(t, bin, p)

	matches, err := xexec.SearchPath("pdflatex")
	require.NoError(t, err)
	assert.Equal(t, []string{bin}, matches)

	p, err = xexec.FindFirst(bin)
	require.NoError(t, err)
	assert.Equal(t, bin, p)

	_, err = xexec.FindFirst("xelatex")
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}
