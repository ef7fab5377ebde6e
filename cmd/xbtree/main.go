package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"nikand.dev/go/xbtree"
	"nikand.dev/go/xbtree/cli"
)

var (
	configPath = flag.String("config", "", "toml config file")
	degree     = flag.Int("degree", 0, "B-Tree minimum degree (>= 2)")
	logLevel   = flag.String("log-level", "", "log level: trace, debug, info, warn, error")
	seed       = flag.Bool("seed", false, "seed the tree with records created with go-faker")
	records    = flag.Int("records", 0, "amount of records to seed the tree with")
	noColor    = flag.Bool("no-color", false, "disable colored output")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "\nB-Tree CLI\n\nArguments:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	c, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	if !c.Color {
		color.NoColor = true
	}

	l, err := c.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}

	t, err := xbtree.NewOrdered[string, string](c.Degree)
	if err != nil {
		l.WithError(err).Fatal("create tree")
	}

	t.SetLogger(l)

	if c.Seed {
		n := cli.Seed(t, c.Records)

		l.WithFields(logrus.Fields{"records": n, "height": t.Height()}).Info("seeded")
	}

	c.Interactive = true

	err = cli.New(bufio.NewScanner(os.Stdin), os.Stdout, t, l, c).Start()
	if err != nil {
		l.WithError(err).Fatal("cli")
	}
}

// config reads the config file if any. Flags set on the command line win.
func config() (c cli.Config, err error) {
	c = cli.DefaultConfig()

	if *configPath != "" {
		c, err = cli.LoadConfig(*configPath)
		if err != nil {
			return
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "degree":
			c.Degree = *degree
		case "log-level":
			c.LogLevel = *logLevel
		case "seed":
			c.Seed = *seed
		case "records":
			c.Records = *records
		case "no-color":
			c.Color = !*noColor
		}
	})

	return c, c.Validate()
}
