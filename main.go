package main

import (
	"os"

	"github.com/OliverFendt/oss-review-toolkit/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
