package main

import "tget/cmd"

func main() {
	cmd.Execute()
}
