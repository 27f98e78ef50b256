package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-blockmark/cmd/blockmark/internal/bootstrap"
	documentcmd "github.com/goliatone/go-blockmark/internal/commands/document"
)

var moduleBuilder = bootstrap.BuildModule

const usage = `usage: blockmark <command> [flags] [file]

commands:
  parse         print the JSON form of a markup document
  format        rewrite a markup document in canonical form
  validate      list structural defects; exits non-zero when any are found
  import-table  turn clipboard text or HTML into a :::table block

Reading from stdin when no file is given.`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalf("blockmark: %v", err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	switch args[0] {
	case "parse":
		return runParse(args[1:], stdin, stdout)
	case "format":
		return runFormat(args[1:], stdin, stdout)
	case "validate":
		return runValidate(args[1:], stdin, stdout)
	case "import-table":
		return runImportTable(args[1:], stdin, stdout)
	case "-h", "-help", "--help", "help":
		fmt.Fprintln(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

type commonFlags struct {
	idStrategy *string
	logLevel   *string
	logFormat  *string
}

func registerCommon(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		idStrategy: fs.String("ids", "positional", "Block id strategy: positional, uuid, content or slug"),
		logLevel:   fs.String("log-level", "", "Enable go-logger output at this level"),
		logFormat:  fs.String("log-format", "console", "go-logger format: json, console or pretty"),
	}
}

func (f commonFlags) options() bootstrap.Options {
	return bootstrap.Options{
		IDStrategy: *f.idStrategy,
		LogLevel:   *f.logLevel,
		LogFormat:  *f.logFormat,
	}
}

func runParse(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("blockmark-parse", flag.ContinueOnError)
	common := registerCommon(fs)
	diagnostics := fs.Bool("diagnostics", false, "Wrap output in an envelope listing skipped constructs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(common.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	input, err := documentInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}
	return module.Handlers.Parse.Execute(context.Background(), documentcmd.ParseDocumentCommand{
		DocumentInput: input,
		Diagnostics:   *diagnostics,
		Output:        stdout,
	})
}

func runFormat(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("blockmark-format", flag.ContinueOnError)
	common := registerCommon(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(common.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	input, err := documentInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}
	return module.Handlers.Format.Execute(context.Background(), documentcmd.FormatDocumentCommand{
		DocumentInput: input,
		Output:        stdout,
	})
}

func runValidate(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("blockmark-validate", flag.ContinueOnError)
	common := registerCommon(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(common.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	input, err := documentInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}
	return module.Handlers.Validate.Execute(context.Background(), documentcmd.ValidateDocumentCommand{
		DocumentInput: input,
		Output:        stdout,
	})
}

func runImportTable(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("blockmark-import-table", flag.ContinueOnError)
	common := registerCommon(fs)
	htmlPath := fs.String("html", "", "File holding the text/html clipboard flavour")
	detectors := fs.String("detectors", "", "Comma separated subset of html, tsv, csv, pipe")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := common.options()
	opts.Detectors = bootstrap.SplitList(*detectors)
	module, err := moduleBuilder(opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	cmd := documentcmd.ImportTableCommand{Output: stdout}
	if *htmlPath != "" {
		data, err := os.ReadFile(*htmlPath)
		if err != nil {
			return fmt.Errorf("read html: %w", err)
		}
		cmd.HTML = string(data)
	}
	text, err := readText(fs.Arg(0), stdin, *htmlPath != "")
	if err != nil {
		return err
	}
	cmd.Text = text
	return module.Handlers.Import.Execute(context.Background(), cmd)
}

func documentInput(path string, stdin io.Reader) (documentcmd.DocumentInput, error) {
	if path != "" && path != "-" {
		return documentcmd.DocumentInput{Path: path}, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return documentcmd.DocumentInput{}, fmt.Errorf("read stdin: %w", err)
	}
	return documentcmd.DocumentInput{Markup: string(data)}, nil
}

// readText loads the text/plain flavour. Stdin is skipped when only an HTML
// file was supplied.
func readText(path string, stdin io.Reader, haveHTML bool) (string, error) {
	switch {
	case path != "" && path != "-":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read text: %w", err)
		}
		return string(data), nil
	case haveHTML && path == "":
		return "", nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}
