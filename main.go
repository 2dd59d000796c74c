package main

import "github.com/example/vocabreview/cmd"

func main() {
	cmd.Execute()
}
