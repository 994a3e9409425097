// Package huffman implements a Huffman codec for the 128-symbol ASCII
// alphabet.  Codes are derived from a tree built by the two-queue merge
// method, and encoded data is packed MSB-first behind a one-byte sentinel
// padding with no header.
//
// The tree is not stored in the encoded bytes.  A Codec that decodes must
// hold a tree with the same structure as the one that encoded, either from the
// same session or rebuilt from the same symbol counts (see Codec.Init and
// ReadTreeFile).
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding#Compression>, two-queue method
//
package huffman
