package main

import "github.com/xronetech/leads/cmd"

func main() {
	cmd.Execute()
}
