package main

import (
	"github.com/mchmarny/repwatch/pkg/cli"
)

func main() {
	cli.Execute()
}
