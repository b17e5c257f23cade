package main

import "github.com/prosodylabs/turnpoint/internal/cli"

func main() {
	cli.Execute()
}
