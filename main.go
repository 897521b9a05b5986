package main

import "github.com/llehouerou/playstate/internal/cli"

func main() {
	cli.Execute()
}
