// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/beevik/term"
	"github.com/w65xx/w65xx/host"
)

var (
	load     string
	loadAddr int
	boot     bool
)

func init() {
	flag.StringVar(&load, "load", "", "binary image to load before running scripts")
	flag.IntVar(&loadAddr, "addr", -1, "load address of the image (default: end the image at $FFFF)")
	flag.BoolVar(&boot, "boot", false, "boot through the reset vector after loading")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: w65xx [options] [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("w65xx: ")

	flag.Parse()

	h := host.New()

	if load != "" {
		origin, size, err := h.Load(load, loadAddr)
		if err != nil {
			log.Fatalf("failed to load '%s': %v", load, err)
		}
		fmt.Printf("Loaded '%s' to $%04X..$%04X.\n", load, origin, int(origin)+size-1)
	}
	if boot {
		h.Boot()
	}

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			log.Fatal(err)
		}
		h.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(h, c)

	// Run commands from standard input, prompting only when a user is
	// typing them.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	h.RunCommands(os.Stdin, os.Stdout, interactive)
}

func handleInterrupt(h *host.Host, c chan os.Signal) {
	for {
		<-c
		h.Break()
	}
}
