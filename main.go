package main

import "github.com/apocrypha/forge/cmd"

func main() {
	cmd.Execute()
}
