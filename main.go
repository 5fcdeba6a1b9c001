package main

import "github.com/tidesh/tidesh/cmd"

func main() {
	cmd.Execute()
}
