// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import (
	"fmt"
	"runtime"
	"strings"
)

// String returns a human readable description of the running binary.
func String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/%s [go=%s", Client, Current, strings.TrimPrefix(runtime.Version(), "go"))
	if GitCommit != "" {
		fmt.Fprintf(&sb, ", commit=%s", GitCommit)
	}
	sb.WriteString("]\n")
	return sb.String()
}
