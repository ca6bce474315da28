package main

import "github.com/ppiankov/rassert/internal/cli"

func main() {
	cli.Execute()
}
