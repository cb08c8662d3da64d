package main

import "github.com/thinkify/mongo-init/cmd"

func main() {
	cmd.Execute()
}
