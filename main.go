package main

import "github.com/dzjyyds666/gotoml/cmd"

func main() {
	cmd.Execute()
}
