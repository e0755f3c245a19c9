package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"

	"github.com/francoispqt/gojay"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"

	"github.com/allanzhao/rsteg/bitplane"
	"github.com/allanzhao/rsteg/stego"
)

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("rsteg "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

// positional fills unset path flags from the remaining arguments, in order.
func positional(fs *flag.FlagSet, paths ...*string) error {
	rest := fs.Args()
	for _, p := range paths {
		if *p == "" && len(rest) > 0 {
			*p, rest = rest[0], rest[1:]
		}
	}
	if len(rest) > 0 {
		return usageErrorf("unexpected arguments %q", rest)
	}
	for _, p := range paths {
		if *p == "" {
			return usageErrorf("missing image path")
		}
	}
	return nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

type planeFlags struct {
	channel *string
	bit     *int
}

func addPlaneFlags(fs *flag.FlagSet) planeFlags {
	return planeFlags{
		channel: fs.String("channel", "red", "channel holding the data: alpha|red|green|blue"),
		bit:     fs.Int("bit", 0, "bit of the channel holding the data, 0 is least significant"),
	}
}

func (p planeFlags) parse() (bitplane.Channel, int, error) {
	ch, err := bitplane.ParseChannel(*p.channel)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errUsage, err)
	}
	if *p.bit < 0 || *p.bit > 7 {
		return 0, 0, usageErrorf("bit %d out of range", *p.bit)
	}
	return ch, *p.bit, nil
}

// embed encodes payload into one bitplane of b.
func embed(b bitplane.Backend, ch bitplane.Channel, bit int, payload []byte, opts stego.Options) error {
	bf, err := b.Bitplane(ch, bit)
	if err != nil {
		return err
	}
	enc, err := stego.NewEncoder(opts)
	if err != nil {
		return err
	}
	if err := enc.Encode(bf, payload); err != nil {
		return err
	}
	return b.SetBitplane(ch, bit, bf)
}

// extract decodes the payload held in one bitplane of b.
func extract(b bitplane.Backend, ch bitplane.Channel, bit int, opts stego.Options) ([]byte, error) {
	bf, err := b.Bitplane(ch, bit)
	if err != nil {
		return nil, err
	}
	return stego.NewDecoder(opts).Decode(bf)
}

func (a *app) encode(args []string) error {
	fs := a.newFlagSet("encode")
	in := fs.String("in", "", "cover image (png, gif or bmp)")
	out := fs.String("out", "", "output image (png or bmp)")
	msg := fs.String("m", "", "message to embed; read from stdin when not given")
	levelName := fs.String("level", "medium", "error correction level: low|medium|high|very_high")
	compress := fs.Bool("zstd", false, "zstd-compress the message before embedding")
	plane := addPlaneFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := positional(fs, in, out); err != nil {
		return err
	}
	level, err := stego.ParseLevel(*levelName)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	ch, bit, err := plane.parse()
	if err != nil {
		return err
	}
	if _, err := bitplane.FormatFromPath(*out); err != nil {
		return err
	}

	var payload []byte
	if isSet(fs, "m") {
		payload = []byte(*msg)
	} else if payload, err = io.ReadAll(a.stdin); err != nil {
		return err
	}
	if *compress {
		if payload, err = compressZstd(payload); err != nil {
			return err
		}
	}

	b, err := a.load(*in)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"in":      *in,
		"bytes":   len(payload),
		"level":   level,
		"channel": ch,
		"bit":     bit,
	}).Debug("embedding")
	if err := embed(b, ch, bit, payload, stego.Options{Level: level, Logger: a.log}); err != nil {
		return err
	}
	return a.save(*out, b)
}

func (a *app) decode(args []string) error {
	fs := a.newFlagSet("decode")
	in := fs.String("in", "", "image holding a message")
	noNewline := fs.Bool("n", false, "do not print a newline after the message")
	compress := fs.Bool("zstd", false, "zstd-decompress the message after extracting")
	plane := addPlaneFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := positional(fs, in); err != nil {
		return err
	}
	ch, bit, err := plane.parse()
	if err != nil {
		return err
	}

	b, err := a.load(*in)
	if err != nil {
		return err
	}
	payload, err := extract(b, ch, bit, stego.Options{Logger: a.log})
	if err != nil {
		return err
	}
	if *compress {
		if payload, err = decompressZstd(payload); err != nil {
			return err
		}
	}
	if _, err := a.stdout.Write(payload); err != nil {
		return err
	}
	if !*noNewline {
		_, err = fmt.Fprintln(a.stdout)
	}
	return err
}

func (a *app) inspect(args []string) error {
	fs := a.newFlagSet("inspect")
	in := fs.String("in", "", "image to inspect")
	plane := addPlaneFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := positional(fs, in); err != nil {
		return err
	}
	ch, bit, err := plane.parse()
	if err != nil {
		return err
	}

	b, err := a.load(*in)
	if err != nil {
		return err
	}
	bf, err := b.Bitplane(ch, bit)
	if err != nil {
		return err
	}
	out, err := gojay.MarshalJSONObject(stego.Inspect(bf))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "%s\n", out)
	return err
}

func (a *app) capacity(args []string) error {
	fs := a.newFlagSet("capacity")
	in := fs.String("in", "", "cover image")
	levelName := fs.String("level", "", "only print this level")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := positional(fs, in); err != nil {
		return err
	}
	levels := []stego.Level{stego.LevelLow, stego.LevelMedium, stego.LevelHigh, stego.LevelVeryHigh}
	if *levelName != "" {
		level, err := stego.ParseLevel(*levelName)
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		levels = []stego.Level{level}
	}

	b, err := a.load(*in)
	if err != nil {
		return err
	}
	size := b.Bounds().Size()
	for _, l := range levels {
		if len(levels) == 1 {
			fmt.Fprintln(a.stdout, stego.Capacity(size.X, size.Y, l))
			continue
		}
		fmt.Fprintf(a.stdout, "%-10s %d\n", l, stego.Capacity(size.X, size.Y, l))
	}
	return nil
}

func compressZstd(p []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(p); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressZstd(p []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(p))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}
