package huffman

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadFile reads the whole file at path.  Failures are reported as *IOError.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// WriteFile creates (or truncates) the file at path and hands a buffered
// writer to fn.  The file is flushed and closed on every path; bytes written
// before a failure stay on disk.  Failures of the file itself are reported as
// *IOError, while errors from fn are returned as-is.
func WriteFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	needClose := true
	defer func() {
		if needClose {
			_ = f.Close()
		}
	}()

	bw := bufio.NewWriter(f)
	if err := fn(&ioErrorWriter{w: bw, path: path}); err != nil {
		_ = bw.Flush()
		return err
	}
	if err := bw.Flush(); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	needClose = false
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}

// ioErrorWriter tags write failures with the path being written.
type ioErrorWriter struct {
	w    io.Writer
	path string
}

func (w *ioErrorWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if err != nil {
		err = &IOError{Op: "write", Path: w.path, Err: err}
	}
	return n, err
}

// AnalyzeFile is Analyze on the contents of the file at path.
func AnalyzeFile(path string) (Frequencies, error) {
	data, err := ReadFile(path)
	if err != nil {
		return Frequencies{}, err
	}
	f, err := Analyze(data)
	if err != nil {
		return Frequencies{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// EncodeFile encodes the file at srcPath into the file at dstPath using c,
// which is left holding the new tree.
func EncodeFile(c *Codec, srcPath string, dstPath string) error {
	input, err := ReadFile(srcPath)
	if err != nil {
		return err
	}

	// Analyze before creating dstPath, so bad input leaves no output file.
	f, err := Analyze(input)
	if err != nil {
		return fmt.Errorf("%s: %w", srcPath, err)
	}
	log.Debugf("%s: %d bytes, %d distinct symbols", srcPath, f.Total(), f.Distinct())

	return WriteFile(dstPath, func(w io.Writer) error {
		return c.EncodeTo(w, input)
	})
}

// DecodeFile decodes the file at srcPath into the file at dstPath using the
// tree c already holds.
func DecodeFile(c *Codec, srcPath string, dstPath string) error {
	encoded, err := ReadFile(srcPath)
	if err != nil {
		return err
	}

	out, err := c.Decode(encoded)
	if err != nil {
		return fmt.Errorf("%s: %w", srcPath, err)
	}

	return WriteFile(dstPath, func(w io.Writer) error {
		_, err := w.Write(out)
		return err
	})
}

// WriteTreeFile saves f as JSON to the file at path.  The file is kept apart
// from the encoded data; it is enough to rebuild the tree with ReadTreeFile
// and NewCodec.
func WriteTreeFile(path string, f Frequencies) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return WriteFile(path, func(w io.Writer) error {
		_, err := w.Write(append(raw, '\n'))
		return err
	})
}

// ReadTreeFile loads Frequencies saved by WriteTreeFile.
func ReadTreeFile(path string) (Frequencies, error) {
	raw, err := ReadFile(path)
	if err != nil {
		return Frequencies{}, err
	}
	var f Frequencies
	if err := f.UnmarshalJSON(raw); err != nil {
		return Frequencies{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
