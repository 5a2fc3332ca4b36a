// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/wareongo/wareongo/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
