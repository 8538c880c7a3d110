// Command minirt renders a sphere scene with a pool of worker goroutines
// and writes the result to an image file.
//
// Usage:
//
//	minirt [width [height [samples [workers [scene-file]]]]] [flags]
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
