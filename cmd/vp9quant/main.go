// Command vp9quant inspects VP9 quantization from the command line.
//
// Usage:
//
//	vp9quant map [-q level | -qindex n]        quantizer level <-> qindex
//	vp9quant tables [options]                  per-plane tables for a qindex
//	vp9quant quant [options] [coeffs...]       quantize one block (use "-" or no coeffs for stdin)
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/deepteams/vp9quant"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "map":
		err = runMap(os.Stdout, os.Args[2:])
	case "tables":
		err = runTables(os.Stdout, os.Args[2:])
	case "quant":
		err = runQuant(os.Stdout, os.Stdin, os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "vp9quant: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "vp9quant: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  vp9quant map [-q level | -qindex n]     Map quantizer level to qindex and back
  vp9quant tables [options]               Print quantization tables for a qindex
  vp9quant quant [options] [coeffs...]    Quantize one transform block

Coefficients are given in raster order, separated by spaces or commas.
Without arguments (or with "-") they are read from stdin. Missing trailing
coefficients are zero. Put "--" before the list if it starts with a
negative value.

Run "vp9quant <command> -h" for command-specific options.
`)
}

// --- map ---

func runMap(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("map", flag.ContinueOnError)
	level := fs.Int("q", -1, "quantizer level 0-63")
	qindex := fs.Int("qindex", -1, "qindex 0-255")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *level >= 0 && *qindex >= 0:
		return fmt.Errorf("map: -q and -qindex are mutually exclusive")
	case *level >= 0:
		fmt.Fprintf(w, "quantizer %d -> qindex %d\n", *level, vp9quant.QuantizerToQIndex(*level))
	case *qindex >= 0:
		fmt.Fprintf(w, "qindex %d -> quantizer %d\n", *qindex, vp9quant.QIndexToQuantizer(*qindex))
	default:
		for l := 0; l <= vp9quant.MaxQuantizer; l++ {
			fmt.Fprintf(w, "%2d %3d\n", l, vp9quant.QuantizerToQIndex(l))
		}
	}
	return nil
}

// --- tables ---

func runTables(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("tables", flag.ContinueOnError)
	qindex := fs.Int("qindex", 128, "qindex 0-255")
	ydc := fs.Int("ydc", 0, "luma DC delta -15..15")
	uvdc := fs.Int("uvdc", 0, "chroma DC delta -15..15")
	uvac := fs.Int("uvac", 0, "chroma AC delta -15..15")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := vp9quant.NewFrame(&vp9quant.Options{
		QIndex: *qindex,
		DeltaQ: vp9quant.DeltaQ{YDC: *ydc, UVDC: *uvdc, UVAC: *uvac},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "qindex %d (quantizer %d)", f.BaseQIndex(), vp9quant.QIndexToQuantizer(f.BaseQIndex()))
	if f.Lossless() {
		fmt.Fprint(w, " lossless")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "kernels: %s\n", vp9quant.Impl())

	for _, plane := range []int{0, 1} {
		p, err := f.Plane(0, plane)
		if err != nil {
			return err
		}
		pt := p.Tables
		fmt.Fprintf(w, "%s:\n", p.Kind)
		printRow(w, "dequant", pt.Dequant())
		printRow(w, "quant", pt.Quant())
		printRow(w, "quant_shift", pt.QuantShift())
		printRow(w, "zbin", pt.Zbin())
		printRow(w, "round", pt.Round())
		printRow(w, "quant_fp", pt.QuantFP())
		printRow(w, "round_fp", pt.RoundFP())
		fmt.Fprintf(w, "  %-12s %d %d\n", "quant_thred", p.QuantThresh[0], p.QuantThresh[1])
	}
	return nil
}

func printRow(w io.Writer, name string, r vp9quant.Row) {
	fmt.Fprintf(w, "  %-12s", name)
	for _, v := range r {
		fmt.Fprintf(w, " %d", v)
	}
	fmt.Fprintln(w)
}

// --- quant ---

func runQuant(w io.Writer, stdin io.Reader, args []string) error {
	fs := flag.NewFlagSet("quant", flag.ContinueOnError)
	qindex := fs.Int("qindex", 128, "qindex 0-255")
	fast := fs.Bool("fast", false, "use the fast quantizer")
	txFlag := fs.String("tx", "4x4", "transform size: 4x4/8x8/16x16/32x32")
	typeFlag := fs.String("type", "dct", "transform type: dct/adst_dct/dct_adst/adst")
	plane := fs.Int("plane", 0, "plane 0-2 (0 = luma)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tx, err := parseTxSize(*txFlag)
	if err != nil {
		return err
	}
	txType, err := parseTxType(*typeFlag)
	if err != nil {
		return err
	}

	var text string
	if fs.NArg() == 0 || (fs.NArg() == 1 && fs.Arg(0) == "-") {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("quant: reading stdin: %w", err)
		}
		text = string(data)
	} else {
		text = strings.Join(fs.Args(), " ")
	}
	coeff, err := parseCoeffs(text, tx.N())
	if err != nil {
		return err
	}

	mode := vp9quant.ModeRegular
	if *fast {
		mode = vp9quant.ModeFast
	}
	f, err := vp9quant.NewFrame(&vp9quant.Options{QIndex: *qindex, Mode: mode})
	if err != nil {
		return err
	}
	blk, err := f.QuantizeBlock(&vp9quant.Job{Plane: *plane, Tx: tx, Type: txType, Coeff: coeff})
	if err != nil {
		return err
	}
	defer blk.Release()

	fmt.Fprintf(w, "qindex %d, %s, %s %s, plane %d\n", f.BaseQIndex(), mode, tx, txType, *plane)
	fmt.Fprintf(w, "eob: %d\n", blk.EOB)
	fmt.Fprintln(w, "qcoeff:")
	printBlock(w, blk.QCoeff, tx)
	fmt.Fprintln(w, "dqcoeff:")
	printBlock(w, blk.DQCoeff, tx)
	return nil
}

func parseTxSize(s string) (vp9quant.TxSize, error) {
	for tx := vp9quant.Tx4x4; tx <= vp9quant.Tx32x32; tx++ {
		if s == tx.String() {
			return tx, nil
		}
	}
	return 0, fmt.Errorf("unknown transform size %q (valid: 4x4, 8x8, 16x16, 32x32)", s)
}

func parseTxType(s string) (vp9quant.TxType, error) {
	switch strings.ToLower(s) {
	case "dct", "dct_dct":
		return vp9quant.DCTDCT, nil
	case "adst_dct":
		return vp9quant.ADSTDCT, nil
	case "dct_adst":
		return vp9quant.DCTADST, nil
	case "adst", "adst_adst":
		return vp9quant.ADSTADST, nil
	default:
		return 0, fmt.Errorf("unknown transform type %q (valid: dct, adst_dct, dct_adst, adst)", s)
	}
}

// parseCoeffs reads up to n integers separated by whitespace or commas.
func parseCoeffs(text string, n int) ([]int16, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) > n {
		return nil, fmt.Errorf("quant: %d coefficients given, block holds %d", len(fields), n)
	}
	coeff := make([]int16, n)
	for i, fld := range fields {
		v, err := strconv.ParseInt(fld, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("quant: coefficient %d: %w", i, err)
		}
		coeff[i] = int16(v)
	}
	return coeff, nil
}

func printBlock(w io.Writer, c []int16, tx vp9quant.TxSize) {
	width := tx.Width()
	for r := 0; r < width; r++ {
		fmt.Fprint(w, " ")
		for _, v := range c[r*width : (r+1)*width] {
			fmt.Fprintf(w, " %5d", v)
		}
		fmt.Fprintln(w)
	}
}
