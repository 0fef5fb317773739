package main

import "github.com/dzjyyds666/qyaml/cmd"

func main() {
	cmd.Execute()
}
