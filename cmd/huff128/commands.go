package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/chronos-tachyon/huffman128"
)

const (
	encodedSuffix = ".huf"
	treeSuffix    = ".tree"
	decodedSuffix = ".dec"
)

func ratio(stats huffman.Stats) float64 {
	if stats.InputBytes == 0 {
		return 0
	}
	return 100 * float64(stats.OutputBytes) / float64(stats.InputBytes)
}

func encodeFromArgs(args []string) error {
	cf := parseFlags("encode", args)
	cf.only("j", "o", "t")

	files := cf.set.Args()
	if len(files) == 0 {
		usageErrorf("not enough arguments; expected FILE...")
	}
	if len(files) > 1 && (cf.outPath != "" || cf.treePath != "") {
		usageErrorf("-o and -t need exactly one FILE, got %d", len(files))
	}
	if cf.jobs < 1 {
		usageErrorf("-j must be at least 1, got %d", cf.jobs)
	}

	// Each file gets its own Codec, so sessions share nothing.
	results := make([]huffman.Stats, len(files))
	var g errgroup.Group
	g.SetLimit(cf.jobs)
	for index, srcPath := range files {
		index, srcPath := index, srcPath
		outPath := cf.outPath
		if outPath == "" {
			outPath = srcPath + encodedSuffix
		}
		treePath := cf.treePath
		if treePath == "" {
			treePath = outPath + treeSuffix
		}

		g.Go(func() error {
			var c huffman.Codec
			if err := huffman.EncodeFile(&c, srcPath, outPath); err != nil {
				return err
			}
			if err := huffman.WriteTreeFile(treePath, c.Frequencies()); err != nil {
				return err
			}
			log.Debugf("%s: wrote %s and %s", srcPath, outPath, treePath)
			results[index] = c.Stats()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for index, srcPath := range files {
		stats := results[index]
		printer.Printf("%s: %d bytes -> %d bytes (%.1f%%)\n", srcPath, stats.InputBytes, stats.OutputBytes, ratio(stats))
	}
	return nil
}

func defaultDecodedPath(encodedPath string) string {
	return strings.TrimSuffix(encodedPath, encodedSuffix) + decodedSuffix
}

func decodeFromArgs(args []string) error {
	cf := parseFlags("decode", args)
	cf.only("o", "t", "s")

	if cf.set.NArg() != 1 {
		usageErrorf("expected exactly one FILE, got %d", cf.set.NArg())
	}
	if cf.treePath != "" && cf.sourcePath != "" {
		usageErrorf("-t and -s are mutually exclusive")
	}

	encodedPath := cf.set.Arg(0)
	outPath := cf.outPath
	if outPath == "" {
		outPath = defaultDecodedPath(encodedPath)
	}

	var freqs huffman.Frequencies
	var err error
	if cf.sourcePath != "" {
		log.Debugf("rebuilding tree from source %s", cf.sourcePath)
		freqs, err = huffman.AnalyzeFile(cf.sourcePath)
	} else {
		treePath := cf.treePath
		if treePath == "" {
			treePath = encodedPath + treeSuffix
		}
		log.Debugf("rebuilding tree from %s", treePath)
		freqs, err = huffman.ReadTreeFile(treePath)
	}
	if err != nil {
		return err
	}

	c, err := huffman.NewCodec(freqs)
	if err != nil {
		return err
	}
	if err := huffman.DecodeFile(c, encodedPath, outPath); err != nil {
		return err
	}

	stats := c.Stats()
	printer.Printf("%s: %d bytes -> %d bytes\n", encodedPath, stats.InputBytes, stats.OutputBytes)
	return nil
}

func roundtripFromArgs(args []string) error {
	cf := parseFlags("roundtrip", args)
	cf.only()

	files := cf.set.Args()
	if len(files) == 0 {
		usageErrorf("not enough arguments; expected FILE...")
	}

	for _, srcPath := range files {
		input, err := huffman.ReadFile(srcPath)
		if err != nil {
			return err
		}

		var c huffman.Codec
		encoded, err := c.Encode(input)
		if err != nil {
			return fmt.Errorf("%s: %w", srcPath, err)
		}
		encodeStats := c.Stats()

		decoded, err := c.Decode(encoded)
		if err != nil {
			return fmt.Errorf("%s: %w", srcPath, err)
		}
		if !bytes.Equal(input, decoded) {
			return fmt.Errorf("%s: round trip mismatch: %d bytes in, %d bytes out", srcPath, len(input), len(decoded))
		}

		printer.Printf("%s: ok, %d bytes -> %d bytes (%.1f%%), codes of %d .. %d bits\n",
			srcPath, encodeStats.InputBytes, encodeStats.OutputBytes, ratio(encodeStats),
			c.Encoder().MinSize(), c.Encoder().MaxSize())
	}
	return nil
}

func dumpFromArgs(args []string) error {
	cf := parseFlags("dump", args)
	cf.only()

	if cf.set.NArg() != 1 {
		usageErrorf("expected exactly one FILE, got %d", cf.set.NArg())
	}

	freqs, err := huffman.AnalyzeFile(cf.set.Arg(0))
	if err != nil {
		return err
	}
	c, err := huffman.NewCodec(freqs)
	if err != nil {
		return err
	}

	if _, err := freqs.Dump(os.Stdout); err != nil {
		return err
	}
	if _, err := c.Root().Dump(os.Stdout); err != nil {
		return err
	}
	if _, err := c.Encoder().Dump(os.Stdout); err != nil {
		return err
	}
	return nil
}
