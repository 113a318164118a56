package main

import (
	"github.com/fawkesrobotics/go-pddl/pkg/cmd"
)

func main() {
	cmd.Execute()
}
