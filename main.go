package main

import "playground/cmd"

func main() {
	cmd.Execute(staticFiles)
}
