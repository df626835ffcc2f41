package detect

import (
	"bytes"
	"io"

	"github.com/richardlehane/mscfb"
)

// CompoundFileKind distinguishes the handful of stream layouts a legacy
// CFB/OLE2 compound file can hold, beyond the bare signature match
// Detect already performs (SPEC_FULL.md DOMAIN STACK: mscfb extends
// §4.13 "xls-xml vs CFB-based legacy binary").
type CompoundFileKind int

const (
	CompoundFileUnknown CompoundFileKind = iota
	// CompoundFileBIFF is a legacy .xls binary workbook: a "Workbook" or
	// "Book" stream holds the BIFF record stream directly.
	CompoundFileBIFF
	// CompoundFileEncryptedPackage is an OOXML (.xlsx/.xlsm) package
	// wrapped in CFB encryption: an "EncryptionInfo" stream plus an
	// "EncryptedPackage" stream hold the encrypted ZIP payload.
	CompoundFileEncryptedPackage
)

// ProbeCompoundFile opens data as a CFB container and classifies it by
// inspecting its root-storage stream names, without extracting stream
// content. Callers should already have confirmed the CFB signature via
// Detect; ProbeCompoundFile returns CompoundFileUnknown (not an error)
// for any container it cannot parse, since a malformed or truncated CFB
// file is still a legitimate (if useless) detection outcome.
func ProbeCompoundFile(data []byte) CompoundFileKind {
	r, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return CompoundFileUnknown
	}
	hasEncryptionInfo, hasEncryptedPackage := false, false
	for {
		entry, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		switch entry.Name {
		case "Workbook", "Book":
			return CompoundFileBIFF
		case "EncryptionInfo":
			hasEncryptionInfo = true
		case "EncryptedPackage":
			hasEncryptedPackage = true
		}
	}
	if hasEncryptionInfo && hasEncryptedPackage {
		return CompoundFileEncryptedPackage
	}
	return CompoundFileUnknown
}
