// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package perms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChmodRDirOnly(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	sub := filepath.Join(dir, "db")
	require.NoError(os.Mkdir(sub, 0o700))
	file := filepath.Join(sub, "LOG")
	require.NoError(os.WriteFile(file, nil, ReadOnly))

	require.NoError(ChmodR(dir, true, ReadWriteExecute))

	info, err := os.Stat(sub)
	require.NoError(err)
	require.Equal(os.FileMode(ReadWriteExecute), info.Mode().Perm())

	info, err = os.Stat(file)
	require.NoError(err)
	require.Equal(os.FileMode(ReadOnly), info.Mode().Perm())
}

func TestChmodRMissingDir(t *testing.T) {
	require.NoError(t, ChmodR(filepath.Join(t.TempDir(), "missing"), true, ReadWriteExecute))
}
