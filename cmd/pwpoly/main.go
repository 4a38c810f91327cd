// Command pwpoly loads a piecewise polynomial definition, optionally combines
// it with a second one, and prints its rendering, digest, values and summary.
//
//	pwpoly -c pwpoly -d . --with other.yaml --op mul --eval 0.5,2 \
//	    --from 0 --to 1 --samples 101 --emit --log-level DEBUG
//
// The definition is read by viper from <config-dir>/<config>.{json,toml,yaml,yml}.
// Every flag can also be set from the environment as PWPOLY_<FLAG>, dashes
// replaced by underscores.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/op/go-logging"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tuneinsight/polyrange/piecewise"
	"github.com/tuneinsight/polyrange/utils/errs"
)

const (
	cfgConfig    = "config"
	cfgConfigDir = "config-dir"
	cfgWith      = "with"
	cfgOp        = "op"
	cfgEval      = "eval"
	cfgFrom      = "from"
	cfgTo        = "to"
	cfgSamples   = "samples"
	cfgEmit      = "emit"
	cfgLogLevel  = "log-level"

	envPrefix = "pwpoly"

	logFormat = "%{color}%{time:2006-01-02 15:04:05.000} [%{level:.4s}]%{color:reset} %{shortfile} %{message}"
)

var log = logging.MustGetLogger("pwpoly")

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("pwpoly", flag.ContinueOnError)
	fs.StringP(cfgConfig, "c", "pwpoly", "Filename of the definition file without the file extension")
	fs.StringP(cfgConfigDir, "d", ".", "Path to the directory containing the definition file")
	fs.String(cfgWith, "", "Path to a YAML definition to combine with")
	fs.String(cfgOp, "add", "Combination with the --with definition: add or mul")
	fs.StringSlice(cfgEval, nil, "Points to evaluate")
	fs.Float64(cfgFrom, 0, "Lower bound of the sampled segment")
	fs.Float64(cfgTo, 1, "Upper bound of the sampled segment")
	fs.Int(cfgSamples, 0, "Number of evenly spaced points of [from,to] to summarize")
	fs.Bool(cfgEmit, false, "Write the normalized definition as YAML")
	fs.String(cfgLogLevel, "INFO", "Log level: CRITICAL, ERROR, WARNING, NOTICE, INFO or DEBUG")
	return fs
}

// loadConfig parses args into fs and reads the definition file they point to.
func loadConfig(fs *flag.FlagSet, args []string) (*viper.Viper, error) {

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	node := viper.New()
	node.SetEnvPrefix(envPrefix)
	node.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	node.AutomaticEnv()

	if err := node.BindPFlags(fs); err != nil {
		return nil, err
	}

	node.SetConfigName(node.GetString(cfgConfig))
	node.AddConfigPath(node.GetString(cfgConfigDir))

	if err := node.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("cannot read definition %s in %s: %w", node.GetString(cfgConfig), node.GetString(cfgConfigDir), err)
	}

	return node, nil
}

func initLog(levelString string) error {

	level, err := logging.LogLevel(levelString)
	if err != nil {
		return err
	}

	backend := logging.AddModuleLevel(
		logging.NewBackendFormatter(
			logging.NewLogBackend(os.Stderr, "", 0),
			logging.MustStringFormatter(logFormat),
		),
	)
	backend.SetLevel(level, "")
	logging.SetBackend(backend)

	return nil
}

func readDefinition(path string) (def piecewise.Definition, err error) {
	f, err := os.Open(path)
	if err != nil {
		return def, err
	}
	defer f.Close()
	return piecewise.ReadDefinition(f)
}

// run executes the command configured by node, writing its report on w.
func run(node *viper.Viper, w io.Writer) error {

	var def piecewise.Definition
	if err := node.Unmarshal(&def); err != nil {
		return fmt.Errorf("cannot decode definition: %w", err)
	}

	variable := def.Variable
	if variable == "" {
		variable = piecewise.DefaultVariable
	}

	pp, err := def.Build()
	if err != nil {
		return err
	}

	log.Infof("loaded %d fragments from %s", pp.Len(), node.ConfigFileUsed())

	if with := node.GetString(cfgWith); with != "" {

		other, err := readDefinition(with)
		if err != nil {
			return err
		}

		opp, err := other.Build()
		if err != nil {
			return fmt.Errorf("%s: %w", with, err)
		}

		log.Infof("loaded %d fragments from %s", opp.Len(), with)

		switch op := node.GetString(cfgOp); op {
		case "add":
			pp, err = piecewise.Add(pp, opp)
		case "mul":
			pp, err = piecewise.Mul(pp, opp)
		default:
			err = errs.Errorf(errs.InvalidArgument, "unknown operation %q, expect add or mul", op)
		}

		if err != nil {
			return err
		}
	}

	pp.Shrink()

	log.Debugf("%d fragments after shrinking", pp.Len())

	digest, err := pp.Digest()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, pp.Format(variable))
	fmt.Fprintf(w, "digest: %x\n", digest)

	for _, s := range node.GetStringSlice(cfgEval) {

		x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid --%s point %q: %w", cfgEval, s, err)
		}

		y, err := pp.Evaluate(x)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "f(%v) = %v\n", x, y)
	}

	if n := node.GetInt(cfgSamples); n > 0 {

		summary, err := pp.Summarize(piecewise.Linspace(node.GetFloat64(cfgFrom), node.GetFloat64(cfgTo), n))
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "summary: %v\n", summary)
	}

	if node.GetBool(cfgEmit) {
		if err = piecewise.WriteDefinition(w, piecewise.NewDefinition(pp, variable)); err != nil {
			return err
		}
	}

	return nil
}

func main() {

	node, err := loadConfig(newFlagSet(), os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err = initLog(node.GetString(cfgLogLevel)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err = run(node, os.Stdout); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
