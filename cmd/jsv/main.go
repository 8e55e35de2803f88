package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/arnodel/jsvalue"
	"github.com/arnodel/jsvalue/encoding/csv"
	"github.com/arnodel/jsvalue/encoding/json"
	"github.com/arnodel/jsvalue/encoding/jpv"
	"github.com/arnodel/jsvalue/encoding/jsoniter"
	"github.com/arnodel/jsvalue/encoding/jsontext"
	"github.com/arnodel/jsvalue/internal/format"
	"github.com/arnodel/jsvalue/token"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type cli struct {
	Verbose bool `help:"Log diagnostics to stderr." short:"v"`

	Fmt    fmtCmd    `cmd:"" default:"withargs" help:"Decode JSON from stdin and write it back formatted (default)."`
	Check  checkCmd  `cmd:"" help:"Decode JSON from stdin and report the first error, if any."`
	Tokens tokensCmd `cmd:"" help:"Print the tokens read from stdin, one per line."`
}

type InputFlags struct {
	Tokenizer string `help:"Tokenizer for the input: ${enum}." enum:"scanner,jsontext,csv,jpv" default:"scanner" env:"JSV_TOKENIZER"`
	Header    bool   `help:"With the csv tokenizer, take field names from the first record and read records as objects."`
}

type DecodeFlags struct {
	InputFlags `embed:""`

	Expect string `help:"Kind of value to accept: ${enum}." enum:"any,null,boolean,number,string,array,object" default:"any"`
	Stream bool   `help:"Accept a sequence of values instead of a single one."`
}

type fmtCmd struct {
	DecodeFlags `embed:""`

	Output  string `help:"Output format: ${enum}." enum:"json,jpv" default:"json" env:"JSV_OUTPUT"`
	Indent  int    `help:"Number of spaces per indentation level." default:"2" env:"JSV_INDENT"`
	Compact bool   `help:"Write each JSON value on a single line, without spaces or colors."`
	Color   string `help:"Colorize output: ${enum}." enum:"auto,always,never" default:"auto" env:"JSV_COLOR"`
}

type checkCmd struct {
	DecodeFlags `embed:""`
}

type tokensCmd struct {
	InputFlags `embed:""`
}

// env is what commands need from the process.
type env struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	isTerminal bool
}

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see run).
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
			os.Exit(2)
		}
	}()

	isTerminal := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	os.Exit(run(os.Args[1:], &env{
		stdin:      os.Stdin,
		stdout:     colorable.NewColorableStdout(),
		stderr:     os.Stderr,
		isTerminal: isTerminal,
	}))
}

type exitCode int

// run executes the command line args and returns the process exit code.
func run(args []string, e *env) (code int) {
	defer func() {
		if r := recover(); r != nil {
			if c, ok := r.(exitCode); ok {
				code = int(c)
				return
			}
			panic(r)
		}
	}()

	var c cli
	parser, err := kong.New(&c,
		kong.Name("jsv"),
		kong.Description("Decode JSON into values and write them back."),
		kong.Writers(e.stdout, e.stderr),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			// kong reports usage errors with its own codes; they are all
			// failures here.
			if code != 0 {
				code = 1
			}
			panic(exitCode(code))
		}),
	)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	logger := newLogger(c.Verbose, e.stderr)
	defer logger.Sync()

	err = kctx.Run(e, logger)
	if err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// stdout is a pipe and something closed it (e.g. 'head' or 'less').
			// In this case we don't want to complain.
			return 0
		}
		fmt.Fprintf(e.stderr, "jsv: %s\n", err)
		return 1
	}
	return 0
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core).Named("jsv")
}

func (c *fmtCmd) Run(e *env, logger *zap.Logger) error {
	out := bufio.NewWriter(e.stdout)
	printer := &format.DefaultPrinter{Writer: out, IndentSize: c.Indent}
	// If we are writing to a terminal, flush after each value so the user
	// gets feedback early.
	if e.isTerminal {
		printer.Flusher = out
	}
	var err error
	switch {
	case c.Output == "jpv":
		printer.IndentSize = 0
		err = c.encodeTo(e, logger, &jpv.Writer{Printer: printer, Colorizer: c.colorizer(e)})
	case c.Compact:
		err = c.writeCompact(e, logger, out)
	default:
		err = c.encodeTo(e, logger, &json.Writer{Printer: printer, Colorizer: c.colorizer(e)})
	}
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	return err
}

func (c *fmtCmd) encodeTo(e *env, logger *zap.Logger, w token.Sink) error {
	return c.decode(e, logger, func(v jsvalue.Value) error {
		return jsvalue.Encode(v, w)
	})
}

// writeCompact uses the jsoniter writer, which separates values with a new
// line but does not end the last one.
func (c *fmtCmd) writeCompact(e *env, logger *zap.Logger, out *bufio.Writer) error {
	w := jsoniter.NewWriter(out)
	written := false
	err := c.decode(e, logger, func(v jsvalue.Value) error {
		written = true
		if err := jsvalue.Encode(v, w); err != nil {
			return err
		}
		return w.Flush()
	})
	if err != nil {
		return err
	}
	if written {
		_, err = out.WriteString("\n")
	}
	return err
}

func (c *fmtCmd) colorizer(e *env) *format.Colorizer {
	switch c.Color {
	case "always":
		return &format.DefaultColorizer
	case "auto":
		if e.isTerminal {
			return &format.DefaultColorizer
		}
	}
	return nil
}

func (c *checkCmd) Run(e *env, logger *zap.Logger) error {
	return c.decode(e, logger, func(jsvalue.Value) error { return nil })
}

func (c *tokensCmd) Run(e *env, logger *zap.Logger) error {
	out := bufio.NewWriter(e.stdout)
	defer out.Flush()
	src, wait := c.open(e.stdin, logger)
	err := token.Copy(token.NewStreamSink(printStream{out}), src)
	return tokenizerError(err, wait)
}

// decode calls fn with each value read from stdin.
func (f *DecodeFlags) decode(e *env, logger *zap.Logger, fn func(jsvalue.Value) error) error {
	want, err := jsvalue.ParseKind(f.Expect)
	if err != nil {
		return errors.Wrap(err, "--expect")
	}
	src, wait := f.open(e.stdin, logger)
	start := time.Now()
	count := 0
	err = decodeValues(src, want, f.Stream, func(v jsvalue.Value) error {
		count++
		return fn(v)
	})
	if err = tokenizerError(err, wait); err != nil {
		return err
	}
	logger.Debug("decoded input",
		zap.Int("values", count),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func decodeValues(src token.Source, want jsvalue.Kind, stream bool, fn func(jsvalue.Value) error) error {
	kind, err := src.Advance()
	if err != nil {
		return err
	}
	if kind == token.KindNotAvailable {
		if stream {
			return nil
		}
		return errors.New("no input")
	}
	if stream {
		return jsvalue.DecodeStream(src, want, fn)
	}
	v, err := jsvalue.Decode(src, want)
	if err != nil {
		return err
	}
	return fn(v)
}

// open returns a token source reading r, and a function that waits for the
// tokenizer to finish and returns the error it stopped with.
func (f *InputFlags) open(r io.Reader, logger *zap.Logger) (token.Source, func() error) {
	logger.Debug("reading input", zap.String("tokenizer", f.Tokenizer))
	var producer token.Producer
	switch f.Tokenizer {
	case "jsontext":
		return jsontext.NewSource(r), func() error { return nil }
	case "jpv":
		producer = jpv.NewDecoder(r)
	case "csv":
		decoder := csv.NewDecoder(r)
		decoder.HasHeader = f.Header
		producer = decoder
	default:
		producer = json.NewDecoder(r)
	}
	var parseErr error
	stream := token.StartStream(producer, func(err error) {
		parseErr = err
	})
	wait := func() error {
		for range stream {
		}
		return parseErr
	}
	return token.NewStreamSource(token.ChannelReadStream(stream)), wait
}

// tokenizerError returns the tokenizer's own error in preference to err, as a
// failing tokenizer makes the token stream end early.
func tokenizerError(err error, wait func() error) error {
	if err == nil {
		return wait()
	}
	if parseErr := wait(); parseErr != nil {
		return errors.Wrap(parseErr, "error while parsing")
	}
	return err
}

type printStream struct {
	w io.Writer
}

func (p printStream) Put(tok token.Token) {
	fmt.Fprintln(p.w, tok)
}
