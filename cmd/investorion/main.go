package main

import "github.com/investorion/cli/internal/cmd"

func main() {
	cmd.Execute()
}
