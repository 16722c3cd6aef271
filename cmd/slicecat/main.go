package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/kafka-go-streams/stringslice"
	"github.com/kafka-go-streams/stringslice/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// flags holds the command line options shared by all commands.
type flags struct {
	strip     bool
	skipEmpty bool
	number    bool
	field     string
	logLevel  string
	logFormat string

	dbPath string
	dbKey  string
}

func newRootCmd(logger *log.Logger) *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:           "slicecat [file]",
		Short:         "Print the lines of a file, optionally stripped or cut at a separator",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(logger, f, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			logger.WithField("bytes", len(data)).Debug("Read input")

			p, err := newPrinter(cmd.OutOrStdout(), f)
			if err != nil {
				return err
			}
			for line := range stringslice.Lines(stringslice.Of(data)) {
				if !p.print(line) {
					break
				}
			}
			return p.flush()
		},
	}

	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Print the lines of a value stored in RocksDB",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := table.NewStore(&table.StoreConfig{
				StoragePath: f.dbPath,
				Logger:      logger,
			})
			if err != nil {
				return err
			}
			defer store.Close()

			p, err := newPrinter(cmd.OutOrStdout(), f)
			if err != nil {
				return err
			}
			if err := store.Lines([]byte(f.dbKey), p.print); err != nil {
				return fmt.Errorf("read %q from %s: %w", f.dbKey, f.dbPath, err)
			}
			return p.flush()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&f.strip, "strip", false, "Strip leading and trailing whitespace from each line")
	rootCmd.PersistentFlags().BoolVar(&f.skipEmpty, "skip-empty", false, "Skip lines that are empty after stripping")
	rootCmd.PersistentFlags().BoolVarP(&f.number, "number", "n", false, "Number the output lines")
	rootCmd.PersistentFlags().StringVarP(&f.field, "field", "f", "", "Only print each line up to the first occurrence of this byte")
	rootCmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "info", "Log level")
	rootCmd.PersistentFlags().StringVar(&f.logFormat, "log-format", "json", "Log format (json or text)")

	dbCmd.Flags().StringVar(&f.dbPath, "path", "", "Path to the RocksDB database")
	dbCmd.Flags().StringVar(&f.dbKey, "key", "", "Key of the value to print")
	_ = dbCmd.MarkFlagRequired("path")
	_ = dbCmd.MarkFlagRequired("key")

	rootCmd.AddCommand(dbCmd)
	return rootCmd
}

func setupLogger(logger *log.Logger, f *flags, out io.Writer) error {
	level, err := log.ParseLevel(f.logLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	logger.SetOutput(out)
	switch f.logFormat {
	case "json":
		logger.SetFormatter(new(log.JSONFormatter))
	case "text":
		logger.SetFormatter(new(log.TextFormatter))
	default:
		return fmt.Errorf("unknown log format %q", f.logFormat)
	}
	return nil
}

func main() {
	logger := log.New()
	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Fatalf("%v", err)
	}
}

// printer writes lines according to the command line options.
type printer struct {
	w       *bufio.Writer
	opts    options
	written int
	err     error
}

type options struct {
	strip     bool
	skipEmpty bool
	number    bool
	hasField  bool
	field     byte
}

func newPrinter(w io.Writer, f *flags) (*printer, error) {
	opts := options{strip: f.strip, skipEmpty: f.skipEmpty, number: f.number}
	if f.field != "" {
		if len(f.field) != 1 {
			return nil, fmt.Errorf("field separator must be a single byte, got %q", f.field)
		}
		opts.hasField = true
		opts.field = f.field[0]
	}
	return &printer{w: bufio.NewWriter(w), opts: opts}, nil
}

// print writes one line and reports whether printing should go on.
func (p *printer) print(line stringslice.Slice) bool {
	out, ok := p.opts.apply(line)
	if !ok {
		return true
	}
	p.written++
	if p.opts.number {
		_, p.err = fmt.Fprintf(p.w, "%6d\t", p.written)
		if p.err != nil {
			return false
		}
	}
	if _, p.err = p.w.Write(out.Data()); p.err != nil {
		return false
	}
	if out.At(out.Len()-1) != '\n' {
		p.err = p.w.WriteByte('\n')
	}
	return p.err == nil
}

func (p *printer) flush() error {
	if p.err != nil {
		return p.err
	}
	return p.w.Flush()
}

// apply returns the part of line to print, and false if it is skipped.
func (o options) apply(line stringslice.Slice) (stringslice.Slice, bool) {
	if o.hasField {
		if i := line.Find(o.field); i != stringslice.NPos {
			line = line.Substr(0, i)
		}
	}
	if o.strip || o.skipEmpty {
		stripped := line.Strip()
		if o.skipEmpty && stripped.Empty() {
			return line, false
		}
		if o.strip {
			line = stripped
		}
	}
	return line, true
}
