package main

import "github.com/chriserin/specdraw/cmd"

func main() {
	cmd.Execute()
}
