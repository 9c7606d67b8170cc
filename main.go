package main

import "github.com/brogergvhs/novelsrc/cmd"

func main() {
	cmd.Execute()
}
