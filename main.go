package main

import "github.com/sot/chandra-time/cmd"

func main() {
	cmd.Execute()
}
