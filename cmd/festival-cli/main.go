package main

import "festivalhub/cmd/festival-cli/command"

func main() {
	command.Execute()
}
