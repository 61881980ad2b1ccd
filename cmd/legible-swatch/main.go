// legible-swatch - reference swatch extraction plugin for legible
//
// Serves the built-in histogram or k-means swatch extractor over the
// go-plugin RPC protocol, so the host can run extraction out of process.
//
// Build:
//
//	go build -o legible-swatch ./cmd/legible-swatch
//
// Usage:
//
//	legible check snapshot.json --capture screen.png --swatch-plugin ./legible-swatch
//
// Environment:
//
//	LEGIBLE_SWATCH_ALGORITHM: histogram (default) or kmeans
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xyproto/env/v2"

	"github.com/jmylchreest/legible/internal/plugin/builtin"
	"github.com/jmylchreest/legible/internal/plugin/protocol"
	"github.com/jmylchreest/legible/internal/swatch"
	"github.com/jmylchreest/legible/pkg/plugin"
)

func main() {
	alg := swatch.Algorithm(env.Str("LEGIBLE_SWATCH_ALGORITHM", string(swatch.AlgorithmHistogram)))
	if !swatch.IsValidAlgorithm(alg) {
		fmt.Fprintf(os.Stderr, "Error: unknown algorithm %q (valid algorithms: %v)\n", alg, swatch.ValidAlgorithms())
		os.Exit(2)
	}
	p := &builtin.Plugin{Algorithm: alg}

	if len(os.Args) > 1 && os.Args[1] == protocol.InfoFlag {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(p.GetMetadata()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	plugin.Serve(p)
}
