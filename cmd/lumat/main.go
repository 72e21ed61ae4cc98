// SPDX-License-Identifier: MIT

// Command lumat runs the matrix kernels (determinant, inverse, LU, solve,
// products and CSR compression) on matrices read from YAML or JSON files.
package main

import (
	goflag "flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	defer klog.Flush()

	cmd := NewCommandLumat("lumat", IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr})
	cmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)

	if err := cmd.Execute(); err != nil {
		klog.V(1).InfoS("Command failed", "err", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		klog.Flush()
		os.Exit(1)
	}
}
