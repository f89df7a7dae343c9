package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/ttoutline"
	"github.com/npillmayer/ttoutline/glyf"
	"github.com/npillmayer/ttoutline/ot"
	"github.com/npillmayer/ttoutline/otquery"
	"github.com/pterm/pterm"
)

// tracer traces with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":  "go",
		"trace.tyse.fonts": "Info",
		"trace.font.glyf":  "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load")
	strict := flag.Bool("strict", false, "Reject glyphs with truncated point data")
	testfont := flag.Bool("testfont", false, "Parse font as relaxed test font fixture")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)        // will set the correct level later
	pterm.Info.Println("Welcome to TrueType Outline CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("glyf > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, gid: -1}
	//
	// load font to use
	conf[glyf.ConfigStrict] = *strict
	if err := intp.loadFont(*fontname, conf, *testfont); err != nil { // font name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font *ttoutline.Font
	repl *readline.Instance
	gid  int // current glyph, -1 if none
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	mode := "lenient"
	if intp.font.Resolver().Options().Strict {
		mode = "strict"
	}
	if intp.gid < 0 {
		return fmt.Sprintf("( %s )", mode)
	}
	return fmt.Sprintf("( %s glyph=%d )", mode, intp.gid)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	INFO
	GLYPH
	RUNE
	POINTS
	COMPONENTS
	PATH
	PNG
	STRICT
)

var opMap = map[string]int{
	"quit":       QUIT,
	"help":       HELP,
	"info":       INFO,
	"glyph":      GLYPH,
	"rune":       RUNE,
	"points":     POINTS,
	"components": COMPONENTS,
	"path":       PATH,
	"png":        PNG,
	"strict":     STRICT,
}

var opNames = []string{
	"quit",
	"help",
	"info",
	"glyph",
	"rune",
	"points",
	"components",
	"path",
	"png",
	"strict",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
		command.op[i].format = ""
	}
}

// parseCommand splits a line into steps, separated by blanks. Each step has
// the form op[:arg[:format]], e.g. "glyph:36", "png:48:a.png" or "strict:on".
func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, fmt.Errorf("too many steps in command: %d", len(steps))
	}
	command.count = len(steps)
	for i, step := range steps {
		c := strings.SplitN(step, ":", 3)
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		if code == QUIT {
			return &command, nil
		}
		command.op[i].arg = getOptArg(c, 1)
		command.op[i].format = getOptArg(c, 2)
		if command.op[i].arg == "" {
			tracer().Debugf("%s", opNames[command.op[i].code])
		} else {
			tracer().Debugf("%s: argument '%s'", opNames[command.op[i].code], command.op[i].arg)
		}
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:       quitOp,
	HELP:       helpOp,
	INFO:       infoOp,
	GLYPH:      glyphOp,
	RUNE:       runeOp,
	POINTS:     pointsOp,
	COMPONENTS: componentsOp,
	PATH:       pathOp,
	PNG:        pngOp,
	STRICT:     strictOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

func strictOp(intp *Intp, op *Op) (error, bool) {
	opts := intp.font.Resolver().Options()
	switch strings.ToLower(op.arg) {
	case "on", "true", "1":
		opts.Strict = true
	case "off", "false", "0":
		opts.Strict = false
	case "":
		pterm.Printf("strict mode is %v\n", opts.Strict)
		return nil, false
	default:
		return fmt.Errorf("strict mode must be on or off, is %q", op.arg), false
	}
	f, err := intp.font.WithOptions(opts)
	if err != nil {
		return err, false
	}
	intp.font = f
	tracer().Infof("strict mode set to %v", opts.Strict)
	return nil, false
}

func runeOp(intp *Intp, op *Op) (error, bool) {
	r, size := utf8.DecodeRuneInString(op.arg)
	if r == utf8.RuneError || size != len(op.arg) {
		if cp, err := strconv.ParseUint(strings.TrimPrefix(strings.ToUpper(op.arg), "U+"), 16, 32); err == nil {
			r = rune(cp)
		} else {
			return fmt.Errorf("not a single character or code-point: %q", op.arg), false
		}
	}
	gid := otquery.GlyphIndex(intp.font.OT, r)
	pterm.Printf("%#U is mapped to glyph %d\n", r, gid)
	intp.gid = int(gid)
	return printGlyphHeader(intp, gid)
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontname string, conf testconfig.Conf, testfont bool) (err error) {
	intp.font, err = loadLocalFont(fontname, conf, testfont)
	if err == nil {
		pterm.Printf("font tables: %v\n", intp.font.OT.TableTags())
	}
	return
}

func loadLocalFont(fontFileName string, conf testconfig.Conf, testfont bool) (*ttoutline.Font, error) {
	if fontFileName == "" {
		return nil, errors.New("no font given, use flag -font")
	}
	var opts []ot.ParseOption
	if testfont {
		opts = append(opts, ot.IsTestfont)
	}
	f, err := ttoutline.LoadFont(fontFileName, conf, opts...)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontFileName, err)
		return nil, err
	}
	tracer().Infof("loaded font = %s", f.OT.F.Fontname)
	return f, nil
}

// ----------------------------------------------------------------------

var ErrNoGlyph = errors.New("no glyph selected")

// glyphArg returns the glyph addressed by an op's argument, or the
// current glyph if the argument is empty.
func (intp *Intp) glyphArg(op *Op) (ot.GlyphIndex, error) {
	if op.noArg() {
		if intp.gid < 0 {
			return 0, ErrNoGlyph
		}
		return ot.GlyphIndex(intp.gid), nil
	}
	n, err := strconv.Atoi(op.arg)
	if err != nil {
		return 0, fmt.Errorf("glyph index not numeric: %v", op.arg)
	}
	if n < 0 || n >= intp.font.NumGlyphs() {
		return 0, fmt.Errorf("glyph index out of range [0…%d): %d", intp.font.NumGlyphs(), n)
	}
	intp.gid = n
	return ot.GlyphIndex(n), nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}
