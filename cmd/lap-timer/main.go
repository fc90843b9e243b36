package main

import "github.com/oshokin/lap-timer/cmd/lap-timer/cmd"

func main() {
	cmd.Execute()
}
