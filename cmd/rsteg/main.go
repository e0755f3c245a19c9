// Command rsteg hides messages in the least significant bits of an image
// in a way that survives padding, small crops and scattered bit damage.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/allanzhao/rsteg/bitplane"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

const usage = `usage: rsteg [-v] [-log-format text|json] <command> [flags]

commands:
  encode    embed a message into an image
  decode    reveal a message hidden in an image
  inspect   report what a decoder can see in an image, as JSON
  capacity  print how many bytes an image can hold
`

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *logrus.Logger

	load func(path string) (bitplane.Backend, error)
	save func(path string, b bitplane.Backend) error
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(logrus.WarnLevel)
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		log:    log,
		load:   loadImage,
		save:   saveImage,
	}
}

func loadImage(path string) (bitplane.Backend, error) {
	img, _, err := bitplane.Load(path)
	if err != nil {
		return nil, err
	}
	return bitplane.NewImage(img), nil
}

func saveImage(path string, b bitplane.Backend) error {
	img, ok := b.(*bitplane.Image)
	if !ok {
		return fmt.Errorf("cannot save %T", b)
	}
	return bitplane.Save(path, img.NRGBA())
}

// errUsage marks errors that should print usage and exit with status 2.
var errUsage = errors.New("usage error")

func (a *app) run(args []string) int {
	fs := flag.NewFlagSet("rsteg", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() { fmt.Fprint(a.stderr, usage) }
	verbose := fs.Bool("v", false, "log debug output")
	logFormat := fs.String("log-format", "text", "log format: text|json")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}
	switch *logFormat {
	case "text":
	case "json":
		a.log.SetFormatter(&logrus.JSONFormatter{})
	default:
		fmt.Fprintf(a.stderr, "unknown log format %q\n", *logFormat)
		return exitUsage
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	var err error
	switch cmd, rest := fs.Arg(0), fs.Args()[1:]; cmd {
	case "encode":
		err = a.encode(rest)
	case "decode":
		err = a.decode(rest)
	case "inspect":
		err = a.inspect(rest)
	case "capacity":
		err = a.capacity(rest)
	default:
		fmt.Fprintf(a.stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return exitUsage
	}
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return exitUsage
	default:
		a.log.WithError(err).Debug("command failed")
		fmt.Fprintln(a.stderr, err)
		return exitFail
	}
}

func main() {
	os.Exit(newApp(os.Stdin, os.Stdout, os.Stderr).run(os.Args[1:]))
}
