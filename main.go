package main

import "github.com/quadrium-music/quadrium/cmd"

func main() {
	cmd.Execute()
}
