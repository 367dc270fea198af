package main

import "github.com/wave-app/wave/cmd"

func main() {
	cmd.Execute()
}
