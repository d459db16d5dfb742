package main

import "github.com/naka-gawa/repo-detective/cmd"

func main() {
	cmd.Execute()
}
