package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"lchmap/convert"
	"lchmap/render"
	"lchmap/swatch"
)

type CLI struct {
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info" env:"LCHMAP_LOG_LEVEL"`
	LogJSON  bool   `help:"Log as JSON lines" name:"log-json"`

	Lch    convert.LChCmd `cmd:"" help:"Show a color as Lab, LCh and slider values"`
	Rgb    convert.RGBCmd `cmd:"" help:"Convert slider values to an RGB color"`
	Render render.CLICmd  `cmd:"" help:"Render the color map of a lightness slice to an image"`
	Swatch swatch.CLICmd  `cmd:"" help:"Write and list RIFF PAL swatches"`
}

func newLogger(level string, json bool, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("lchmap"),
		kong.Description("L*C*h* color conversions and color map previews."),
		kong.UsageOnError(),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger, err := newLogger(cli.LogLevel, cli.LogJSON, os.Stderr)
	kctx.FatalIfErrorf(err)
	slog.SetDefault(logger)

	kctx.BindTo(os.Stdout, (*io.Writer)(nil))
	if err := kctx.Run(); err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		kctx.Exit(1)
	}
}
