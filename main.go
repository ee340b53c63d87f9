package main

import "github.com/vietdv277/awsprof/cmd"

func main() {
	cmd.Execute()
}
