package main

import "uvc-cli/cmd"

func main() {
	cmd.Execute()
}
