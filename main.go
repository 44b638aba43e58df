package main

import "github.com/texmexdex/motherchord/cmd"

func main() {
	cmd.Execute()
}
