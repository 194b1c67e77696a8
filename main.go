package main

import "convertts/cmd"

func main() {
	cmd.Execute()
}
