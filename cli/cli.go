package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"tlog.app/go/errors"

	"nikand.dev/go/xbtree"
)

type Cli struct {
	scanner *bufio.Scanner
	w       io.Writer
	tree    *xbtree.Tree[string, string]
	l       *logrus.Logger

	interactive bool

	prompt *color.Color
	errc   *color.Color
	okc    *color.Color
}

func New(s *bufio.Scanner, w io.Writer, t *xbtree.Tree[string, string], l *logrus.Logger, c Config) *Cli {
	cli := &Cli{
		scanner:     s,
		w:           w,
		tree:        t,
		l:           l,
		interactive: c.Interactive,
		prompt:      color.New(color.FgCyan, color.Bold),
		errc:        color.New(color.FgRed),
		okc:         color.New(color.FgGreen),
	}

	if !c.Color {
		cli.prompt.DisableColor()
		cli.errc.DisableColor()
		cli.okc.DisableColor()
	}

	return cli
}

// Start runs the loop until EXIT or end of input.
func (c *Cli) Start() error {
	if c.interactive {
		c.printHelp()
		c.printPrompt()
	}

	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return nil
		}

		if c.interactive {
			c.printPrompt()
		}
	}

	if err := c.scanner.Err(); err != nil {
		return errors.Wrap(err, "read input")
	}

	return nil
}

func (c *Cli) printHelp() {
	fmt.Fprint(c.w, `
B-Tree CLI

Available Commands:
  SET <key> <val> Insert a new key-value pair into the B-Tree
  PUT <key> <val> Insert or replace a key-value pair
  GET <key>       Retrieve the value for key from the B-Tree
  DEL <key>       Remove a key-value pair from the B-Tree
  DUMP            Print the tree level by level
  CHECK           Verify the tree invariants
  LEN             Print the number of items and the height
  KEYS            Print all the keys in order
  HELP            Print this message
  EXIT            Terminate this session

`)
}

func (c *Cli) printPrompt() {
	c.prompt.Fprint(c.w, "> ")
}

func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}

	command := strings.ToLower(fields[0])
	args := fields[1:]

	if c.l != nil {
		c.l.WithFields(logrus.Fields{"cmd": command, "args": len(args)}).Debug("command")
	}

	switch command {
	default:
		c.errc.Fprintf(c.w, "Unknown command %q\n", command)
	case "set":
		c.processSetCommand(args)
	case "put":
		c.processPutCommand(args)
	case "get":
		c.processGetCommand(args)
	case "del":
		c.processDeleteCommand(args)
	case "dump":
		c.processDumpCommand(args)
	case "check":
		c.processCheckCommand()
	case "len":
		fmt.Fprintf(c.w, "%d items, height %d\n", c.tree.Len(), c.tree.Height())
	case "keys":
		fmt.Fprintf(c.w, "%s\n", strings.Join(c.tree.Keys(), " "))
	case "help":
		c.printHelp()
	case "exit":
		return false
	}

	return true
}

func (c *Cli) processSetCommand(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.w, "Usage: SET <key> <value>")
		return
	}

	err := c.tree.Insert(args[0], args[1])
	if errors.Is(err, xbtree.ErrDuplicateKey) {
		c.errc.Fprintln(c.w, "Duplicate key.")
		return
	}

	c.okc.Fprintln(c.w, "OK")
}

func (c *Cli) processPutCommand(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.w, "Usage: PUT <key> <value>")
		return
	}

	old, replaced := c.tree.Put(args[0], args[1])
	if replaced {
		c.okc.Fprintf(c.w, "Replaced %s\n", old)
		return
	}

	c.okc.Fprintln(c.w, "Inserted")
}

func (c *Cli) processGetCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.w, "Usage: GET <key>")
		return
	}

	val, ok := c.tree.Search(args[0])
	if !ok {
		c.errc.Fprintln(c.w, "Key not found.")
		return
	}

	fmt.Fprintln(c.w, val)
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.w, "Usage: DEL <key>")
		return
	}

	val, err := c.tree.Delete(args[0])
	if errors.Is(err, xbtree.ErrKeyNotFound) {
		c.errc.Fprintln(c.w, "Key not found.")
		return
	}

	fmt.Fprintln(c.w, val)
}

func (c *Cli) processDumpCommand(args []string) {
	var err error

	if len(args) == 1 && strings.EqualFold(args[0], "values") {
		err = c.tree.DumpValues(c.w)
	} else {
		err = c.tree.Dump(c.w)
	}

	if err != nil && c.l != nil {
		c.l.WithError(err).Error("dump")
	}
}

func (c *Cli) processCheckCommand() {
	err := c.tree.Check()
	if err != nil {
		c.errc.Fprintf(c.w, "%v\n", err)
		return
	}

	c.okc.Fprintln(c.w, "ok")
}
