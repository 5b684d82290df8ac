package main

import "tagmanager/cmd/tagmanager/cmd"

func main() {
	cmd.Execute()
}
