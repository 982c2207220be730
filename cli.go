//go:build cli
// +build cli

package main

import (
	_ "pos.GO/custom"

	"pos.GO/cmd"
	"pos.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
