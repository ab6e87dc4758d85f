package main

import "appcheck-stub/cmd"

func main() {
	cmd.Execute()
}
