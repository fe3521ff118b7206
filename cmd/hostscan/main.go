package main

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Scan  Scan  `cmd:"" default:"withargs" help:"Scan a network once and print the hosts found."`
	Watch Watch `cmd:"" help:"Scan a network on an interval and export the results over HTTP."`
}

func main() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("hostscan"),
		kong.Description("Discover hosts on the local IPv4 network."),
		kong.UsageOnError(),
	)

	ctx.FatalIfErrorf(ctx.Run())
}
