package main

import "github.com/modcache/smc/cmd"

func main() {
	cmd.Execute()
}
