package main

import "ghostroot/cmd"

func main() {
	cmd.Execute()
}
