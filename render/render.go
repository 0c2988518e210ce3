package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cloudcmds/eks/compiler"
	"github.com/cloudcmds/eks/gradient"
	"github.com/cloudcmds/eks/vm"
)

// RowLabelStyle selects the counter printed before each row.
type RowLabelStyle int

const (
	LabelNone RowLabelStyle = iota
	LabelByte
	LabelWord
	LabelLine
)

// ParseRowLabelStyle parses a row label style name.
func ParseRowLabelStyle(s string) (RowLabelStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "hide", "false":
		return LabelNone, nil
	case "byte", "bytes", "true":
		return LabelByte, nil
	case "word", "words":
		return LabelWord, nil
	case "line", "lines":
		return LabelLine, nil
	}
	return LabelNone, fmt.Errorf("expected none, byte, word, or line (got %q)", s)
}

// Options configures a Renderer. Encoding is required; zero values elsewhere
// select defaults.
type Options struct {
	Encoding *Encoding

	// Program derives the coloring key from each chunk value. A nil program
	// colors each chunk by its own value.
	Program *compiler.Program

	// Gradient maps coloring keys to colors. Defaults to gradient.Default.
	Gradient *gradient.Gradient

	// ASCII enables the ASCII gutter when non-nil.
	ASCII *ASCIIPalette

	// ChunksPerWord is the number of chunks in a space-delimited word.
	// Defaults to the base's natural word size.
	ChunksPerWord int

	// WordsPerLine is the number of words per output line. Defaults to a
	// 16-chunk line.
	WordsPerLine int

	// LittleEndian displays each chunk's bytes least significant first.
	LittleEndian bool

	// DisplayOffset is added to the file positions shown in row labels.
	DisplayOffset uint64

	// Limit stops rendering after this many input bytes. Zero means no limit.
	Limit uint64

	// Truecolor selects 24-bit color escapes; otherwise colors are
	// quantized to the xterm-256 palette.
	Truecolor bool

	// ColorSingleGlyphs colors each output glyph by its own digit value
	// instead of coloring whole chunks.
	ColorSingleGlyphs bool

	RowLabel RowLabelStyle
}

// defaultWordSize is the natural number of chunks per word for each base.
var defaultWordSize = map[int]int{2: 1, 4: 2, 8: 1, 16: 4, 32: 1, 64: 2}

// DefaultChunksPerWord returns the natural number of chunks in a
// space-delimited word for a base, the value used when Options leaves
// ChunksPerWord unset.
func DefaultChunksPerWord(base int) int {
	return defaultWordSize[base]
}

// Renderer streams bytes from a reader to a colorized dump on a writer. A
// Renderer is single-use state for one run but holds only per-line buffers,
// so memory use is independent of input size.
type Renderer struct {
	opts     Options
	machine  *vm.Machine
	quantize map[gradient.Color]int
}

// New creates a Renderer. The compiled program and gradient in the options
// are treated as immutable and are never modified.
func New(opts Options) (*Renderer, error) {
	if opts.Encoding == nil {
		return nil, fmt.Errorf("render: an encoding is required")
	}
	if opts.Gradient == nil {
		opts.Gradient = gradient.Default()
	}
	if opts.ChunksPerWord <= 0 {
		opts.ChunksPerWord = defaultWordSize[opts.Encoding.Base()]
	}
	if opts.WordsPerLine <= 0 {
		opts.WordsPerLine = 16 / opts.ChunksPerWord
		if opts.WordsPerLine < 1 {
			opts.WordsPerLine = 1
		}
	}
	return &Renderer{
		opts:     opts,
		machine:  vm.New(),
		quantize: map[gradient.Color]int{},
	}, nil
}

// Render reads src to the end (or to the configured limit) and writes the
// colorized dump to dst. A calc evaluation failure aborts the run.
func (r *Renderer) Render(src io.Reader, dst io.Writer) error {
	ew := &errWriter{w: bufio.NewWriter(dst)}
	st := &lineState{renderer: r, w: ew}

	enc := r.opts.Encoding
	chunk := make([]byte, 0, enc.ChunkLen())
	br := bufio.NewReader(src)

	var consumed uint64
	for r.opts.Limit == 0 || consumed < r.opts.Limit {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		consumed++
		chunk = append(chunk, b)
		if len(chunk) < enc.ChunkLen() {
			continue
		}
		if err := st.drawChunk(chunk); err != nil {
			return err
		}
		chunk = chunk[:0]
	}
	if len(chunk) > 0 {
		if err := st.drawChunk(chunk); err != nil {
			return err
		}
	}
	st.finish()
	return ew.flush()
}

// lineState tracks the position within the current output line.
type lineState struct {
	renderer *Renderer
	w        *errWriter

	chunkInWord  int
	wordInLine   int
	lineOpen     bool
	glyphsInLine int
	offset       uint64 // bytes drawn so far
	asciiBuf     []byte
	scratch      []byte

	lastColor    TermColor
	hasLastColor bool
}

func (st *lineState) drawChunk(chunk []byte) error {
	r := st.renderer
	enc := r.opts.Encoding

	if !st.lineOpen {
		st.startLine()
	} else if st.chunkInWord == 0 {
		st.w.writeString(" ")
		st.glyphsInLine++
	}

	value := ChunkValue(chunk, enc.ChunkLen(), r.opts.LittleEndian)

	if r.opts.ColorSingleGlyphs {
		for _, glyph := range enc.Glyphs(value) {
			key, err := r.evalKey(glyph, enc.GlyphBits())
			if err != nil {
				return err
			}
			st.setColor(r.termColor(r.opts.Gradient.Pick(key, enc.GlyphBits())))
			st.w.writeByte(enc.alphabet[glyph])
			st.glyphsInLine++
		}
	} else {
		key, err := r.evalKey(value, enc.ChunkBits())
		if err != nil {
			return err
		}
		st.setColor(r.termColor(r.opts.Gradient.Pick(key, enc.ChunkBits())))
		st.scratch = enc.AppendChunk(st.scratch[:0], value)
		st.w.write(st.scratch)
		st.glyphsInLine += enc.GlyphsPerChunk()
	}

	if r.opts.ASCII != nil {
		st.asciiBuf = append(st.asciiBuf, chunk...)
	}
	st.offset += uint64(len(chunk))

	st.chunkInWord++
	if st.chunkInWord == r.opts.ChunksPerWord {
		st.chunkInWord = 0
		st.wordInLine++
		if st.wordInLine == r.opts.WordsPerLine {
			st.endLine()
		}
	}
	return nil
}

func (st *lineState) startLine() {
	r := st.renderer
	st.lineOpen = true
	st.glyphsInLine = 0
	st.hasLastColor = false
	st.w.writeColor(Reset)

	label := r.opts.DisplayOffset + st.offset
	enc := r.opts.Encoding
	switch r.opts.RowLabel {
	case LabelByte:
		fmt.Fprintf(st.w, "0x%08x:  ", label)
	case LabelWord:
		fmt.Fprintf(st.w, "0x%08x:  ", label/uint64(enc.ChunkLen()*r.opts.ChunksPerWord))
	case LabelLine:
		bytesPerLine := enc.ChunkLen() * r.opts.ChunksPerWord * r.opts.WordsPerLine
		fmt.Fprintf(st.w, "0x%08x:  ", label/uint64(bytesPerLine))
	}
}

// endLine writes the ASCII gutter (padding the glyph columns of a short
// final line first) and terminates the line.
func (st *lineState) endLine() {
	r := st.renderer
	if r.opts.ASCII != nil {
		lineWidth := r.glyphLineWidth()
		for st.glyphsInLine < lineWidth {
			st.w.writeString(" ")
			st.glyphsInLine++
		}
		st.writeGutter()
	}
	st.w.writeString("\n")
	st.lineOpen = false
	st.chunkInWord = 0
	st.wordInLine = 0
	st.asciiBuf = st.asciiBuf[:0]
}

// finish closes a partial final line and restores the terminal color.
func (st *lineState) finish() {
	if st.lineOpen {
		st.endLine()
	}
	st.w.writeColor(Reset)
}

func (st *lineState) writeGutter() {
	r := st.renderer
	colors := r.opts.ASCII.colors()
	st.w.writeColor(Reset)
	st.w.writeString("  |")
	lastClass := -1
	for _, b := range st.asciiBuf {
		class := classify(b)
		if class != lastClass {
			lastClass = class
			st.w.writeColor(r.termColor(colors[class]))
		}
		if b > 0x1f && b < 0x7f {
			st.w.writeByte(b)
		} else {
			st.w.writeString("·")
		}
	}
	st.w.writeColor(Reset)
	st.w.writeString("|")
}

func (st *lineState) setColor(c TermColor) {
	if st.hasLastColor && c == st.lastColor {
		return
	}
	st.lastColor = c
	st.hasLastColor = true
	st.w.writeColor(c)
}

// glyphLineWidth is the number of glyph and separator columns in a full line.
func (r *Renderer) glyphLineWidth() int {
	opts := r.opts
	return opts.WordsPerLine*opts.ChunksPerWord*opts.Encoding.GlyphsPerChunk() +
		(opts.WordsPerLine - 1)
}

// evalKey runs the calc program against one value. A nil program is the
// identity transform.
func (r *Renderer) evalKey(value uint64, width uint) (uint64, error) {
	if r.opts.Program == nil {
		return value, nil
	}
	key, err := r.machine.Eval(r.opts.Program, value, width)
	if err != nil {
		return 0, fmt.Errorf("calc failed on input %#x: %w", value, err)
	}
	return key, nil
}

// termColor converts an RGB color to the terminal representation for this
// run, memoizing xterm-256 quantization.
func (r *Renderer) termColor(c gradient.Color) TermColor {
	if r.opts.Truecolor {
		return RGB(c)
	}
	index, ok := r.quantize[c]
	if !ok {
		index = gradient.Quantize(c)
		r.quantize[c] = index
	}
	return Indexed(index)
}

// errWriter wraps a buffered writer with a sticky error so the render loop
// can write without checking every call. The first error is reported by
// flush.
type errWriter struct {
	w   *bufio.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return len(p), nil
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, nil
}

func (ew *errWriter) write(p []byte) { _, _ = ew.Write(p) }

func (ew *errWriter) writeString(s string) { _, _ = ew.Write([]byte(s)) }

func (ew *errWriter) writeByte(b byte) { _, _ = ew.Write([]byte{b}) }

func (ew *errWriter) writeColor(c TermColor) {
	if ew.err != nil {
		return
	}
	if err := c.Fg(ew.w); err != nil {
		ew.err = err
	}
}

func (ew *errWriter) flush() error {
	if ew.err != nil {
		return ew.err
	}
	return ew.w.Flush()
}
