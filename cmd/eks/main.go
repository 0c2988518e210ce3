// Command eks converts binary input to a color-coded dump in a configurable
// power-of-two base, like xxd but colorful.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cloudcmds/eks"
	"github.com/cloudcmds/eks/gradient"
	"github.com/cloudcmds/eks/render"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "eks [flags] [input [output]]",
		Short:   "convert binary input to color-coded text in power-of-2 bases",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Args:    cobra.MaximumNArgs(2),
		Long: `eks reads bytes from a file or stdin and prints them in a configurable
base (2, 4, 8, 16, 32, or 64), coloring each byte by the result of a small
RPN formula evaluated against it.

The formula (-x) is a whitespace-insignificant RPN expression over the input
byte x, integer literals (decimal, 0x hex, 0b binary), and the operators
+ - * / % & | ^ ! (bit-not) ~ (negate) << >> >>> (arithmetic shift)
<<< (rotate left) and >>< (rotate right). A shift followed by a literal
shifts by that constant, so ">>>7" extracts the top bit of each byte.

Gradients (-z) are comma-separated color names or #rrggbb literals, or a
preset name (` + strings.Join(gradient.Presets(), ", ") + `).`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.IntP("base", "b", 16, "base to print bytes in: 2, 4, 8, 16, 32, or 64")
	flags.IntP("cols", "c", 0, "number of chunks in a line (0 for the default)")
	flags.IntP("groups", "g", 0, "number of chunks in a space-delimited word")
	flags.BoolP("little-endian", "e", false, "display chunk bytes least significant first")
	flags.Uint64P("limit", "l", 0, "stop after this many bytes (0 for no limit)")
	flags.Uint64P("offset", "o", 0, "add a fixed offset to the displayed file positions")
	flags.Int64P("seek", "s", 0, "seek into the input before decoding (negative seeks from the end)")
	flags.BoolP("uppercase", "u", false, "use uppercase letters when printing")
	flags.StringP("calc", "x", "", "RPN formula deriving the coloring key from each byte")
	flags.StringP("ascii", "y", "mariana", "five comma-separated colors (or a theme) for the ASCII gutter; \"none\" disables it")
	flags.StringP("gradient", "z", "fire", "comma-separated colors or preset name for the byte-coloring gradient")
	flags.String("row-label-style", "byte", "counter before each row: none, byte, word, or line")
	flags.String("truecolor", "auto", "use 24-bit color: auto, on, or off")
	flags.Bool("color-single-glyphs", false, "color single glyphs rather than the bytes they're part of")
	flags.Bool("debug", false, "enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	v := viper.New()
	v.SetEnvPrefix("EKS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	logger := newLogger(v.GetBool("debug"))

	encoding, err := render.NewEncoding(v.GetInt("base"), v.GetBool("uppercase"))
	if err != nil {
		return err
	}

	opts := render.Options{
		Encoding:          encoding,
		LittleEndian:      v.GetBool("little-endian"),
		Limit:             v.GetUint64("limit"),
		ColorSingleGlyphs: v.GetBool("color-single-glyphs"),
		ChunksPerWord:     v.GetInt("groups"),
	}
	if cols := v.GetInt("cols"); cols > 0 {
		perWord := opts.ChunksPerWord
		if perWord <= 0 {
			perWord = render.DefaultChunksPerWord(encoding.Base())
		}
		opts.WordsPerLine = cols / perWord
		if opts.WordsPerLine < 1 {
			opts.WordsPerLine = 1
		}
	}

	if expr := v.GetString("calc"); expr != "" {
		opts.Program, err = eks.Compile(expr)
		if err != nil {
			return err
		}
		logger.Debug().Str("calc", expr).Int("instructions", opts.Program.Len()).
			Msg("compiled calc expression")
	}

	opts.Gradient, err = eks.BuildGradient(v.GetString("gradient"))
	if err != nil {
		return err
	}

	opts.ASCII, err = render.ParseASCIIPalette(v.GetString("ascii"))
	if err != nil {
		return err
	}

	opts.RowLabel, err = render.ParseRowLabelStyle(v.GetString("row-label-style"))
	if err != nil {
		return err
	}

	opts.Truecolor, err = resolveTruecolor(v.GetString("truecolor"))
	if err != nil {
		return err
	}
	logger.Debug().Bool("truecolor", opts.Truecolor).Msg("resolved color mode")

	input, output, cleanup, err := openFiles(args)
	defer cleanup()
	if err != nil {
		return err
	}

	startOffset, err := seekInput(input, v.GetInt64("seek"))
	if err != nil {
		return err
	}
	opts.DisplayOffset = startOffset
	if cmd.Flags().Changed("offset") || v.IsSet("offset") {
		opts.DisplayOffset = v.GetUint64("offset")
	}

	renderer, err := render.New(opts)
	if err != nil {
		return err
	}
	return renderer.Render(input, output)
}

// openFiles resolves the positional input and output arguments, with "-"
// (or absence) meaning stdin and stdout.
func openFiles(args []string) (io.Reader, io.Writer, func(), error) {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout
	var closers []func()
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}
	if len(args) >= 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, cleanup, err
		}
		closers = append(closers, func() { f.Close() })
		input = f
	}
	if len(args) >= 2 && args[1] != "-" {
		f, err := os.Create(args[1])
		if err != nil {
			// The input may already be open; the caller runs cleanup
			// even on error.
			return input, nil, cleanup, err
		}
		closers = append(closers, func() { f.Close() })
		output = f
	}
	return input, output, cleanup, nil
}

// seekInput applies the -s flag and returns the resulting stream position,
// which becomes the default display offset. Non-seekable inputs (stdin)
// only support a zero seek.
func seekInput(input io.Reader, seek int64) (uint64, error) {
	seeker, ok := input.(io.Seeker)
	if !ok {
		if seek != 0 {
			return 0, fmt.Errorf("cannot seek in a non-seekable input")
		}
		return 0, nil
	}
	var pos int64
	var err error
	switch {
	case seek > 0:
		pos, err = seeker.Seek(seek, io.SeekStart)
	case seek < 0:
		pos, err = seeker.Seek(seek, io.SeekEnd)
	default:
		// Pipes are seekable in type only; a zero seek is a no-op.
		pos, err = seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, nil
		}
	}
	if err != nil {
		return 0, err
	}
	return uint64(pos), nil
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
