package main

import "barkeep/cmd"

func main() {
	cmd.Execute()
}
