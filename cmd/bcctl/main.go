package main

import "github.com/memoryxin/battlechess/internal/cli"

func main() {
	cli.Execute()
}
