// SPDX-License-Identifier: MIT
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/katalvlaran/linalg/matrix"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputYAML = "yaml"
	outputJSON = "json"
)

// IOStreams bundles the standard streams a command reads from and writes to.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// GlobalOptions holds the flags shared by every subcommand.
type GlobalOptions struct {
	Epsilon  float64
	AllowInf bool
	Output   string
}

// AddFlags registers the shared flags on fs.
func (g *GlobalOptions) AddFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&g.Epsilon, "epsilon", matrix.DefaultEpsilon, "Tolerance used by approximate comparisons.")
	fs.BoolVar(&g.AllowInf, "allow-inf", false, "Accept ±Inf values in input matrices (NaN is always rejected).")
	fs.StringVarP(&g.Output, "output", "o", outputText, "Output format. One of: text|yaml|json.")
}

// Validate checks the shared flags.
func (g *GlobalOptions) Validate() error {
	if math.IsNaN(g.Epsilon) || math.IsInf(g.Epsilon, 0) || g.Epsilon < 0 {
		return fmt.Errorf("--epsilon must be finite and non-negative, got %v", g.Epsilon)
	}
	switch g.Output {
	case outputText, outputYAML, outputJSON:
	default:
		return fmt.Errorf("--output must be one of text|yaml|json, got %q", g.Output)
	}

	return nil
}

// Policy translates the shared flags into the matrix numeric policy.
// Validate must have succeeded first.
func (g *GlobalOptions) Policy() []matrix.Option {
	opts := []matrix.Option{matrix.WithEpsilon(g.Epsilon)}
	if g.AllowInf {
		opts = append(opts, matrix.WithNoValidateNaNInf())
	}

	return opts
}

// NewCommandLumat builds the root command and its subcommands.
func NewCommandLumat(name string, streams IOStreams) *cobra.Command {
	g := &GlobalOptions{}
	cmds := &cobra.Command{
		Use:           name,
		Short:         "Run LU-based matrix kernels on YAML or JSON matrices",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	g.AddFlags(cmds.PersistentFlags())
	cmds.SetIn(streams.In)
	cmds.SetOut(streams.Out)
	cmds.SetErr(streams.ErrOut)

	cmds.AddCommand(
		newUnaryCommand(g, streams, "det FILE", "Print the determinant of a square matrix", runDet),
		newUnaryCommand(g, streams, "inverse FILE", "Print the inverse of a square matrix", runInverse),
		newUnaryCommand(g, streams, "lu FILE", "Print the eliminated matrix and the row-swap count", runLU),
		newUnaryCommand(g, streams, "transpose FILE", "Print the transpose of a matrix", runTranspose),
		newBinaryCommand(g, streams, "multiply A B", "Print the product A·B", runMultiply),
		newBinaryCommand(g, streams, "solve A B", "Solve A·X = B for X", runSolve),
		newCSRCommand(g, streams),
	)

	return cmds
}

// MatrixOptions is the Complete/Validate/Run state of a subcommand reading
// one or more matrix files.
type MatrixOptions struct {
	*GlobalOptions
	IOStreams

	Paths    []string
	Matrices []*matrix.Dense
}

// Complete records the file arguments.
func (o *MatrixOptions) Complete(args []string) error {
	o.Paths = args

	return nil
}

// Validate checks the shared flags.
func (o *MatrixOptions) Validate() error {
	return o.GlobalOptions.Validate()
}

// Load reads every path into a Dense under the configured policy.
func (o *MatrixOptions) Load() error {
	opts := o.Policy()
	o.Matrices = o.Matrices[:0]
	for _, p := range o.Paths {
		doc, err := readDocument(p, o.In)
		if err != nil {
			return err
		}
		m, err := doc.toDense(opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		klog.V(2).InfoS("Loaded matrix", "path", p, "rows", m.Rows(), "cols", m.Cols(), "nnz", m.NNZ())
		o.Matrices = append(o.Matrices, m)
	}

	return nil
}

// runFunc computes a result from the loaded matrices and prints it.
type runFunc func(o *MatrixOptions) error

func newUnaryCommand(g *GlobalOptions, streams IOStreams, use, short string, run runFunc) *cobra.Command {
	return newMatrixCommand(g, streams, use, short, cobra.ExactArgs(1), run)
}

func newBinaryCommand(g *GlobalOptions, streams IOStreams, use, short string, run runFunc) *cobra.Command {
	return newMatrixCommand(g, streams, use, short, cobra.ExactArgs(2), run)
}

func newMatrixCommand(g *GlobalOptions, streams IOStreams, use, short string, args cobra.PositionalArgs, run runFunc) *cobra.Command {
	o := &MatrixOptions{GlobalOptions: g, IOStreams: streams}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.IOStreams.Out = cmd.OutOrStdout()
			if err := o.Complete(args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			if err := o.Load(); err != nil {
				return err
			}

			return run(o)
		},
	}
}

func runDet(o *MatrixOptions) error {
	d, err := o.Matrices[0].Det()
	if err != nil {
		return err
	}

	return o.printValue("determinant", d)
}

func runInverse(o *MatrixOptions) error {
	inv, err := o.Matrices[0].Inverse()
	if err != nil {
		return err
	}

	return o.printMatrix(inv)
}

func runLU(o *MatrixOptions) error {
	u, swaps, err := o.Matrices[0].LU()
	if err != nil {
		return err
	}
	klog.V(2).InfoS("LU finished", "swaps", swaps)
	if o.Output != outputText {
		return o.printObject(map[string]interface{}{
			"data":  denseDocument(u).Data,
			"swaps": swaps,
		})
	}
	if err = o.printMatrix(u); err != nil {
		return err
	}
	_, err = fmt.Fprintf(o.Out, "swaps: %d\n", swaps)

	return err
}

func runTranspose(o *MatrixOptions) error {
	return o.printMatrix(o.Matrices[0].Transpose())
}

func runMultiply(o *MatrixOptions) error {
	p, err := o.Matrices[0].Multiply(o.Matrices[1])
	if err != nil {
		return err
	}

	return o.printMatrix(p)
}

func runSolve(o *MatrixOptions) error {
	x, err := o.Matrices[0].Solve(o.Matrices[1])
	if err != nil {
		return err
	}

	return o.printMatrix(x)
}

// newCSRCommand compresses a matrix file and prints its three arrays.
func newCSRCommand(g *GlobalOptions, streams IOStreams) *cobra.Command {
	o := &MatrixOptions{GlobalOptions: g, IOStreams: streams}

	return &cobra.Command{
		Use:   "csr FILE",
		Short: "Print the compressed sparse row arrays of a matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.IOStreams.Out = cmd.OutOrStdout()
			if err := o.Complete(args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			doc, err := readDocument(o.Paths[0], o.In)
			if err != nil {
				return err
			}
			s, err := doc.toCSR(o.Policy()...)
			if err != nil {
				return fmt.Errorf("%s: %w", o.Paths[0], err)
			}
			klog.V(2).InfoS("Compressed matrix", "path", o.Paths[0], "rows", s.Rows(), "cols", s.Cols(), "nnz", s.NNZ())

			return o.printObject(newCSRDocument(s))
		},
	}
}

// printMatrix writes m in the selected format.
func (o *MatrixOptions) printMatrix(m *matrix.Dense) error {
	if o.Output == outputText {
		_, err := fmt.Fprint(o.Out, m)
		return err
	}

	return o.printObject(denseDocument(m))
}

// printValue writes a named scalar in the selected format.
func (o *MatrixOptions) printValue(key string, v float64) error {
	if o.Output == outputText {
		_, err := fmt.Fprintf(o.Out, "%g\n", v)
		return err
	}

	return o.printObject(map[string]float64{key: v})
}

// printObject writes obj as YAML or JSON; text falls back to YAML.
func (o *MatrixOptions) printObject(obj interface{}) error {
	var (
		out []byte
		err error
	)
	if o.Output == outputJSON {
		if out, err = json.MarshalIndent(obj, "", "  "); err == nil {
			out = append(out, '\n')
		}
	} else {
		out, err = yaml.Marshal(obj)
	}
	if err != nil {
		return err
	}
	_, err = o.Out.Write(out)

	return err
}
