package main

import (
	"os"

	"github.com/jrsteele09/go-esignbase/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
