package main

import "github.com/testshift/core/cmd"

func main() {
	cmd.Execute()
}
