package main

import "github.com/termchat/termchat/cmd"

func main() {
	cmd.Execute()
}
