package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/hakim/reconscan/internal/config"
	"github.com/hakim/reconscan/internal/option"
	"github.com/hakim/reconscan/internal/report"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	log     = logrus.New()
)

// scanFlags holds the raw scan flag values; they are validated in PreRunE.
var scanFlags struct {
	uri     string
	domain  string
	timeout string
	word    string
	method  string
	save    string
}

var rootCmd = &cobra.Command{
	Use:   appName + " (-u <uri> | -d <domain>) [flags]",
	Short: appSummary,
	Long: `reconscan probes a web root for existing paths or a domain for resolvable
subdomains, driven by a wordlist with one candidate per line.

Results are printed to the terminal and, with --save, written to a plain text
report. Every run is recorded in a local history database.`,
	Example: `  reconscan -u http://192.168.1.8/xvwa/ -w common.txt
  reconscan -d example.com -w subdomain.txt -t 10000 -s result.txt`,
	Version: appVersion,
	Args:    cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		// Skip config loading for commands that don't need it
		if cmd.Name() == "init" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.File != "" {
			log.WithField("file", cfg.File).Debug("config loaded")
		}
		return nil
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFlags(cmd.Flags())
	},
	RunE: runScan,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: search reconscan.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")

	f := rootCmd.Flags()
	f.SortFlags = false
	f.StringVarP(&scanFlags.uri, "uri", "u", "", "URI Scan - Ex: -u http://192.168.1.8/xvwa/ -w common.txt")
	f.StringVarP(&scanFlags.domain, "domain", "d", "", "Domain Scan - Ex: -d example.com -w subdomain.txt")
	f.StringVarP(&scanFlags.timeout, "timeout", "t", "", "Set timeout in ms - Ex: -t 10000")
	f.StringVarP(&scanFlags.word, "word", "w", "", "Use word list - Ex: -w common.txt")
	f.StringVarP(&scanFlags.method, "method", "m", "", "Set HTTP request method for scanning (GET or POST)")
	f.StringVarP(&scanFlags.save, "save", "s", "", "Save scan result to file - Ex: -s result.txt")
	rootCmd.MarkFlagsMutuallyExclusive("uri", "domain")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func setupLogger() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

// flagRules maps each scan flag to the check its value must pass.
var flagRules = []struct {
	name  string
	check func(string) error
}{
	{"uri", option.ValidateURI},
	{"domain", option.ValidateDomain},
	{"timeout", option.ValidateTimeout},
	{"word", option.ValidateFilePath},
	{"method", option.ValidateMethod},
}

// validateFlags checks every scan flag that was set on the command line.
func validateFlags(fs *pflag.FlagSet) error {
	for _, r := range flagRules {
		fl := fs.Lookup(r.name)
		if fl == nil || !fl.Changed {
			continue
		}
		if err := r.check(fl.Value.String()); err != nil {
			return fmt.Errorf("invalid value for '--%s <%s>': %w", r.name, fl.Value.String(), err)
		}
	}
	return nil
}

func newConsole(w io.Writer, noColor bool) *report.Console {
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		noColor = true
	}
	return report.NewConsole(w, report.DefaultSettings(), noColor)
}
