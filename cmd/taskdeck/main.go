package main

import "taskdeck/cmd/taskdeck/root"

func main() {
	root.Execute()
}
