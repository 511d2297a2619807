package main

import (
	"os"

	"github.com/klondiff/klondiff/internal/cliapp"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "inspect":
			os.Exit(cliapp.RunInspect(os.Args[0], os.Args[2:], os.Stdout))
		case "review":
			os.Exit(cliapp.RunReview(os.Args[0], os.Args[2:], os.Stdin, os.Stdout))
		}
	}
	code := cliapp.Run(os.Args[0], os.Args[1:], os.Stdout)
	os.Exit(code)
}
