package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cottand/elab/defs"
	"github.com/cottand/elab/elab"
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/internal/log"
	"github.com/cottand/elab/term"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

var logLevel string

var RunCmd = &cobra.Command{
	Use:   "run [script.go]",
	Short: "Elaborate the goal exported by a tactic script",
	Long: `Evaluates a Go tactic script and elaborates its goal.

The script must use package "script" and export two functions:

    func Goal() term.Raw
    func Script(e *elab.Elab) error

The elaborated term and its type are printed on success.`,
	RunE:         runRun,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

func init() {
	RunCmd.Flags().StringVar(&logLevel, "log-level", "warn", "minimum log level (debug|info|warn|error)")
}

func runRun(cmd *cobra.Command, args []string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		return errors.Wrap(err, "invalid --log-level")
	}
	log.SetLevel(lvl)

	src, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrap(err, "could not read script")
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return errors.Wrap(err, "could not load interpreter stdlib")
	}
	if err := i.Use(Symbols); err != nil {
		return errors.Wrap(err, "could not expose the elaboration API")
	}
	if _, err := i.Eval(string(src)); err != nil {
		return errors.Wrap(err, "script did not evaluate")
	}

	goalV, err := i.Eval("script.Goal")
	if err != nil {
		return errors.Wrap(err, "script must export Goal")
	}
	goalFn, ok := goalV.Interface().(func() term.Raw)
	if !ok {
		return errors.New("Goal must have type func() term.Raw")
	}
	scriptV, err := i.Eval("script.Script")
	if err != nil {
		return errors.Wrap(err, "script must export Script")
	}
	scriptFn, ok := scriptV.Interface().(func(*elab.Elab) error)
	if !ok {
		return errors.New("Script must have type func(*elab.Elab) error")
	}

	tt, ty, err := elab.Elaborate(defs.NewContext(), goalFn(), scriptFn)
	if err != nil {
		var ee elaberr.ElabError
		if errors.As(err, &ee) {
			return errors.New(elaberr.FormatWithCode(ee))
		}
		return err
	}
	fmt.Printf("%s\n  : %s\n", tt, ty)
	return nil
}
