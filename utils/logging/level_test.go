// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var allLevels = []Level{Off, Fatal, Error, Warn, Info, Trace, Debug, Verbo}

func TestAlignedString(t *testing.T) {
	require := require.New(t)

	for _, l := range allLevels {
		as := l.AlignedString()
		require.Len(as, alignedStringLen)
		s := l.String()
		if len(s) >= alignedStringLen {
			require.Equal(s[:alignedStringLen], as)
			continue
		}
		require.Equal(s, as[:len(s)])
		require.Equal(strings.Repeat(" ", alignedStringLen-len(s)), as[len(s):])
	}
}

func TestToLevel(t *testing.T) {
	require := require.New(t)

	for _, l := range allLevels {
		parsed, err := ToLevel(strings.ToLower(l.String()))
		require.NoError(err)
		require.Equal(l, parsed)
	}

	_, err := ToLevel("loud")
	require.ErrorContains(err, "unknown log level")
}

func TestLevelJSON(t *testing.T) {
	require := require.New(t)

	b, err := json.Marshal(Warn)
	require.NoError(err)
	require.Equal(`"WARN"`, string(b))

	var l Level
	require.NoError(json.Unmarshal([]byte(`"trace"`), &l))
	require.Equal(Trace, l)
}
