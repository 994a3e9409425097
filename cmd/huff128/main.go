package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const progName = "huff128"
const usageMessageRaw = `
Usage: huff128 SUBCOMMAND [FLAGS] ARGS...

Subcommands:
  encode [-j JOBS] [-o OUT] [-t TREE] FILE...
    Encode each FILE to FILE.huf, and save the symbol counts needed to
    decode it to FILE.huf.tree.  -o and -t override both names and are
    only allowed with a single FILE.  Up to JOBS files (default: number
    of CPUs) are encoded at once.

  decode [-t TREE | -s SOURCE] [-o OUT] FILE
    Decode FILE to OUT (default: FILE without its .huf suffix, plus
    .dec).  The tree is rebuilt from the counts in TREE (default:
    FILE.tree) or, with -s, from the original input SOURCE.

  roundtrip FILE...
    Encode and decode each FILE in memory with one session, and check
    that the result matches.

  dump FILE
    Print the sorted frequency list, the tree, and the code table for
    FILE.

Every subcommand accepts -d to enable debug logging.  Input files may only
contain bytes 0 through 127.
`

var log = logging.MustGetLogger(progName)

var leveledLogBackend logging.LeveledBackend

var printer = message.NewPrinter(language.English)

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func usageMessage() string {
	return strings.TrimLeft(usageMessageRaw, "\n")
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, usageMessage())
	os.Exit(64)
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progName, err.Error())
	os.Exit(1)
}

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatSpec := "%{level:8s} %{module:-10s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

// commandFlags holds every flag any subcommand may use; each subcommand
// checks that it was not given flags it does not understand.
type commandFlags struct {
	set        *flag.FlagSet
	debug      bool
	jobs       int
	outPath    string
	treePath   string
	sourcePath string
}

func parseFlags(name string, args []string) *commandFlags {
	cf := &commandFlags{}
	cf.set = flag.NewFlagSet(progName+" "+name, flag.ContinueOnError)
	cf.set.Usage = func() {}
	cf.set.SetOutput(&nullWriter{})

	// Usage strings are hardcoded above.
	cf.set.BoolVar(&cf.debug, "d", false, "")
	cf.set.BoolVar(&cf.debug, "debug", false, "")
	cf.set.IntVar(&cf.jobs, "j", runtime.NumCPU(), "")
	cf.set.StringVar(&cf.outPath, "o", "", "")
	cf.set.StringVar(&cf.treePath, "t", "", "")
	cf.set.StringVar(&cf.sourcePath, "s", "", "")

	argErr := cf.set.Parse(args)
	if argErr == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}

	if cf.debug {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}
	return cf
}

// only rejects flags outside of allowed that were set explicitly.
func (cf *commandFlags) only(allowed ...string) {
	ok := make(map[string]bool, len(allowed)+2)
	ok["d"] = true
	ok["debug"] = true
	for _, name := range allowed {
		ok[name] = true
	}
	cf.set.Visit(func(f *flag.Flag) {
		if !ok[f.Name] {
			usageErrorf("flag -%s is not valid for %q", f.Name, cf.set.Name())
		}
	})
}

func main() {
	startLogging()

	if len(os.Args) < 2 {
		usageErrorf("missing subcommand")
	}

	var err error
	subcommand := os.Args[1]
	args := os.Args[2:]
	switch subcommand {
	default:
		usageErrorf("unknown subcommand \"%s\"", subcommand)
	case "help", "-h", "-help", "--help":
		io.WriteString(os.Stdout, usageMessage())
		return
	case "encode":
		err = encodeFromArgs(args)
	case "decode":
		err = decodeFromArgs(args)
	case "roundtrip":
		err = roundtripFromArgs(args)
	case "dump":
		err = dumpFromArgs(args)
	}

	if err != nil {
		exitError(err)
	}
}
