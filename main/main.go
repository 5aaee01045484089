// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/app"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/config"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/version"
)

// main is the primary entry point to the yield oracle node.
func main() {
	fs := config.BuildFlagSet()
	v, err := config.BuildViper(fs, os.Args[1:])

	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}

	if err != nil {
		fmt.Printf("couldn't configure flags: %s\n", err)
		os.Exit(1)
	}

	if v.GetBool(config.VersionKey) {
		fmt.Print(version.String())
		os.Exit(0)
	}

	nodeConfig, err := config.GetNodeConfig(v)
	if err != nil {
		fmt.Printf("couldn't load node config: %s\n", err)
		os.Exit(1)
	}

	nodeApp := app.New(nodeConfig)
	exitCode := app.Run(nodeApp)
	os.Exit(exitCode)
}
