package main

import "github.com/fakeyudi/cladetrace/cmd"

func main() {
	cmd.Execute()
}
