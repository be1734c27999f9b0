// Package constraints provides type constraints shared by the parsers.
package constraints

// Byteseq is an input accepted by the scanners: a string or a byte slice.
type Byteseq interface {
	~string | ~[]byte
}
