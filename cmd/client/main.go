package main

import "photoshare/cmd/client/cmd"

func main() {
	cmd.Execute()
}
