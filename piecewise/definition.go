package piecewise

import (
	"fmt"
	"io"

	"github.com/tuneinsight/polyrange/interval"
	"github.com/tuneinsight/polyrange/polynomial"
	"github.com/tuneinsight/polyrange/utils/errs"
	"gopkg.in/yaml.v3"
)

// DefaultVariable is the variable of a Definition that does not name one.
const DefaultVariable = "x"

// Definition is the textual form of a piecewise polynomial, e.g. in YAML:
//
//	variable: x
//	fragments:
//	  - range: "[-inf,0)"
//	    expr: "-x"
//	  - range: "[0,inf]"
//	    expr: "x^2"
//
// Fragments are bound in order, as by Set.
type Definition struct {
	Variable  string               `yaml:"variable,omitempty" mapstructure:"variable"`
	Fragments []FragmentDefinition `yaml:"fragments" mapstructure:"fragments"`
}

// FragmentDefinition is the textual form of a Fragment.
type FragmentDefinition struct {
	Range    string `yaml:"range" mapstructure:"range"`
	Expr     string `yaml:"expr" mapstructure:"expr"`
	Override bool   `yaml:"override,omitempty" mapstructure:"override"`
}

// NewDefinition returns the Definition of pp in the given variable, with
// fragments in their current order. Coefficients are written with as many
// digits as needed to be read back exactly.
func NewDefinition(pp *Polynomial, variable string) Definition {
	def := Definition{Variable: variable, Fragments: make([]FragmentDefinition, len(pp.fragments))}
	for i, frag := range pp.fragments {
		def.Fragments[i] = FragmentDefinition{
			Range: frag.Range.String(),
			Expr:  frag.Polynomial.FormatPrec(variable, -1),
		}
	}
	return def
}

func (def Definition) variable() (byte, error) {
	switch v := def.Variable; len(v) {
	case 0:
		return DefaultVariable[0], nil
	case 1:
		return v[0], nil
	default:
		return 0, errs.Errorf(errs.InvalidArgument, "variable %q should be a single letter", v)
	}
}

// Build parses the fragments of def and binds them to a new piecewise
// polynomial.
func (def Definition) Build() (*Polynomial, error) {

	variable, err := def.variable()
	if err != nil {
		return nil, fmt.Errorf("cannot Build: %w", err)
	}

	pp := NewPolynomial()

	for i, fd := range def.Fragments {

		var r interval.Range[float64]
		if r, err = interval.ParseRange(fd.Range); err != nil {
			return nil, fmt.Errorf("cannot Build: fragment %d: range %q: %w", i, fd.Range, err)
		}

		var p polynomial.Polynomial
		if p, err = polynomial.Parse(fd.Expr, variable); err != nil {
			return nil, fmt.Errorf("cannot Build: fragment %d: expression %q: %w", i, fd.Expr, err)
		}

		if err = pp.Set(p, r, fd.Override); err != nil {
			return nil, fmt.Errorf("cannot Build: fragment %d: %w", i, err)
		}
	}

	return pp, nil
}

// ReadDefinition decodes a YAML Definition from r.
func ReadDefinition(r io.Reader) (def Definition, err error) {
	if err = yaml.NewDecoder(r).Decode(&def); err != nil {
		return def, fmt.Errorf("cannot ReadDefinition: %w", err)
	}
	return
}

// WriteDefinition encodes def as YAML on w.
func WriteDefinition(w io.Writer, def Definition) (err error) {

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err = enc.Encode(def); err != nil {
		return fmt.Errorf("cannot WriteDefinition: %w", err)
	}

	return enc.Close()
}
