package main

import "github.com/techagentng/civiceye/cmd"

func main() {
	cmd.Execute()
}
