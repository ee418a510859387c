package main

import "github.com/jvmdbg/jdwp-proxy/cmd/jdwp-proxy/cmd"

func main() {
	cmd.Execute()
}
