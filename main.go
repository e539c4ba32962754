package main

import "github.com/lumenlabs/glow/cmd"

func main() {
	cmd.Execute()
}
