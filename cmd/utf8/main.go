// utf8 decodes hex UTF-8 bytes to UTF-16 or UTF-32 code units and encodes
// code units back to UTF-8 bytes.
//
//	utf8 -d [-f 16|32] [-b] [-E|-W] HEX    UTF-8 bytes to code units
//	utf8 -e [-f 16|32] [-b] [-E|-W] HEX    code units to UTF-8 bytes
//	utf8 -i                                interactive inspector
//
// Output is one character per line. Exit status is 0 on success, 1 when input
// could not be converted and 2 on a usage error.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/utfcodec/bom"
	"github.com/wippyai/utfcodec/codepoint"
	"github.com/wippyai/utfcodec/config"
	"github.com/wippyai/utfcodec/internal/hexarg"
	"github.com/wippyai/utfcodec/transcoder"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	decode      bool
	encode      bool
	form        string
	order       string
	policy      string
	bom         bool
	stop        bool
	warn        bool
	upper       bool
	configPath  string
	verbose     bool
	interactive bool
}

func newFlagSet(f *flags) *pflag.FlagSet {
	fs := pflag.NewFlagSet("utf8", pflag.ContinueOnError)
	fs.BoolVarP(&f.decode, "decode", "d", false, "decode hex UTF-8 bytes to code units")
	fs.BoolVarP(&f.encode, "encode", "e", false, "encode hex code units to UTF-8 bytes")
	fs.StringVarP(&f.form, "form", "f", "32", "wide encoding form: 16 or 32")
	fs.StringVar(&f.order, "order", "be", "byte order of the printed byte-order mark: be or le")
	fs.StringVar(&f.policy, "policy", "strict", "validation policy: strict or legacy")
	fs.BoolVarP(&f.bom, "bom", "b", false, "print the byte-order mark of the output form first")
	fs.BoolVarP(&f.stop, "error", "E", false, "stop at the first invalid input (default)")
	fs.BoolVarP(&f.warn, "warn", "W", false, "warn about invalid input, substitute U+FFFD and continue")
	fs.BoolVarP(&f.upper, "upper", "U", false, "print upper-case hex")
	fs.StringVar(&f.configPath, "config", "", "config file (default $"+config.EnvVar+")")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug output to stderr")
	fs.BoolVarP(&f.interactive, "interactive", "i", false, "start the interactive inspector")
	fs.BoolP("help", "h", false, "show help")
	fs.SortFlags = false
	return fs
}

func run(args []string, stdout, stderr io.Writer) int {
	var f flags
	fs := newFlagSet(&f)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(stderr, fs)
			return exitOK
		}
		fmt.Fprintf(stderr, "utf8: %v\n", err)
		return exitUsage
	}
	if help, _ := fs.GetBool("help"); help {
		printHelp(stderr, fs)
		return exitOK
	}

	cfg, err := loadConfig(fs, &f)
	if err != nil {
		fmt.Fprintf(stderr, "utf8: %v\n", err)
		return exitUsage
	}

	logger, err := cfg.Log.Logger(stderr, f.verbose)
	if err != nil {
		fmt.Fprintf(stderr, "utf8: %v\n", err)
		return exitUsage
	}
	defer func() { _ = logger.Sync() }()
	transcoder.SetLogger(logger)

	opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintf(stderr, "utf8: %v\n", err)
		return exitUsage
	}
	opts.Logger = logger

	if f.interactive {
		if !isTerminal() {
			fmt.Fprintln(stderr, "utf8: -i requires a terminal")
			return exitUsage
		}
		if err := runInteractive(opts.Policy, cfg.Upper); err != nil {
			fmt.Fprintf(stderr, "utf8: %v\n", err)
			return exitInvalid
		}
		return exitOK
	}

	if msg := checkModes(&f); msg != "" {
		fmt.Fprintf(stderr, "utf8: %s\n", msg)
		return exitUsage
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "utf8: missing HEX argument")
		return exitUsage
	}
	input := strings.Join(fs.Args(), "")

	tr, err := transcoder.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "utf8: %v\n", err)
		return exitUsage
	}
	c := &converter{
		tr:     tr,
		hex:    hexarg.Formatter{Upper: cfg.Upper},
		bom:    cfg.BOM,
		stdout: stdout,
		stderr: stderr,
		log:    logger,
	}

	if f.decode {
		return c.decode(input)
	}
	return c.encode(input)
}

// loadConfig reads the config file named by --config or the environment and
// applies the flags that were set explicitly.
func loadConfig(fs *pflag.FlagSet, f *flags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.Load(f.configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if fs.Changed("form") {
		cfg.Form = f.form
	}
	if fs.Changed("order") {
		cfg.Order = f.order
	}
	if fs.Changed("policy") {
		cfg.Policy = f.policy
	}
	if fs.Changed("bom") {
		cfg.BOM = f.bom
	}
	if fs.Changed("upper") {
		cfg.Upper = f.upper
	}
	switch {
	case f.warn && !f.stop:
		cfg.Errors = transcoder.Warn.String()
	case f.stop && !f.warn:
		cfg.Errors = transcoder.Stop.String()
	}
	return cfg, cfg.Validate()
}

func checkModes(f *flags) string {
	switch {
	case f.decode && f.encode:
		return "-d and -e are mutually exclusive"
	case !f.decode && !f.encode:
		return "one of -d or -e is required"
	case f.stop && f.warn:
		return "-E and -W are mutually exclusive"
	}
	return ""
}

type converter struct {
	tr     *transcoder.Transcoder
	hex    hexarg.Formatter
	bom    bool
	stdout io.Writer
	stderr io.Writer
	log    *zap.Logger
}

// finish maps the outcome of a conversion to an exit status.
func (c *converter) finish(replaced int, err error) int {
	if err != nil {
		fmt.Fprintf(c.stderr, "utf8: %v\n", err)
		return exitInvalid
	}
	if replaced > 0 && c.tr.Options().Errors == transcoder.Warn {
		return exitInvalid
	}
	return exitOK
}

// decode prints the code units of every character in the hex UTF-8 input.
func (c *converter) decode(input string) int {
	p, err := hexarg.Bytes(input)
	if err != nil {
		fmt.Fprintf(c.stderr, "utf8: %v\n", err)
		return exitUsage
	}
	c.log.Debug("decoding", zap.Int("bytes", len(p)), zap.Stringer("encoding", c.tr))

	if c.bom {
		fmt.Fprintln(c.stdout, c.hex.Bytes(c.tr.Options().Mark().Bytes()))
	}

	cps, replaced, err := c.tr.DecodeUTF8(p)
	chars, more, uerr := c.tr.EncodeUnits(cps)
	for _, units := range chars {
		fmt.Fprintln(c.stdout, c.hex.Units(units))
	}
	if uerr != nil {
		err = uerr
	}
	return c.finish(replaced+more, err)
}

// encode prints the UTF-8 bytes of every character in the hex code units.
func (c *converter) encode(input string) int {
	units, err := hexarg.Units(input, c.tr.Options().Form.HexDigits())
	if err != nil {
		fmt.Fprintf(c.stderr, "utf8: %v\n", err)
		return exitUsage
	}
	c.log.Debug("encoding", zap.Int("units", len(units)), zap.Stringer("encoding", c.tr))

	if c.bom {
		fmt.Fprintln(c.stdout, c.hex.Bytes(bom.FormUTF8.Bytes()))
	}

	cps, replaced, err := c.tr.FromUnits(units)
	for _, cp := range cps {
		p, n, eerr := c.tr.EncodeUTF8([]codepoint.CodePoint{cp})
		replaced += n
		if eerr != nil {
			return c.finish(replaced, eerr)
		}
		fmt.Fprintln(c.stdout, c.hex.Bytes(p))
	}
	return c.finish(replaced, err)
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `utf8 converts between UTF-8 bytes and UTF-16 or UTF-32 code units.

Usage:
  utf8 -d [flags] HEX    decode pairs of hex digits as UTF-8
  utf8 -e [flags] HEX    encode code units of 4 (UTF-16) or 8 (UTF-32) hex digits
  utf8 -i                interactive inspector

Examples:
  utf8 -d e282ac           prints 20ac
  utf8 -d -f 16 f09f9880   prints d83d de00
  utf8 -e -f 16 d83dde00   prints f09f9880

Flags:
`)
	fs.SetOutput(w)
	fs.PrintDefaults()
}
