package main

import (
	"github.com/vardr/utmp/cmd/vardr/cmd"
)

func main() {
	cmd.Execute()
}
