package main

import "github.com/Rorical/missionchat/cmd"

func main() {
	cmd.Execute()
}
