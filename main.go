/*
	Copyright 2023 Markus Papenbrock
*/

package main

import "github.com/mpapenbr/nascar-mfg-standings/cmd"

func main() {
	cmd.Execute()
}
