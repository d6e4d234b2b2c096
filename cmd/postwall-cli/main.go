package main

import "github.com/nfrund/postwall/cmd/postwall-cli/cmd"

func main() {
	cmd.Execute()
}
