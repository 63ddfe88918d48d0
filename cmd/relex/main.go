package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/auvred/relex/cmd/relex/command"
)

func main() {
	root := command.New()

	// glog registers its flags on the standard flag set.
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	// Parse nothing so glog does not complain about logging before flag.Parse.
	args := os.Args[:]
	os.Args = os.Args[:1]
	flag.Parse()
	os.Args = args

	err := root.Execute()
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
