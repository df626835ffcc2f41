// Package detect implements spec.md §4.13's format sniffer: a single
// Detect(bytes) -> format-tag dispatcher a format driver calls before
// choosing which parser to hand the bytes to. Detection never consumes
// or mutates the input; every probe here works off a fixed-size prefix
// or an io.ReaderAt view over the original slice.
package detect

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/xml"
	"strings"
)

// Format is the tag Detect returns.
type Format int

const (
	Unknown Format = iota
	ZIPPackage
	XMLDocument
	GnumericXML
	Parquet
	LegacyCompoundFile
)

func (f Format) String() string {
	switch f {
	case ZIPPackage:
		return "zip-package"
	case XMLDocument:
		return "xml-document"
	case GnumericXML:
		return "gnumeric-xml"
	case Parquet:
		return "parquet"
	case LegacyCompoundFile:
		return "legacy-compound-file"
	default:
		return "unknown"
	}
}

var (
	zipSig     = []byte{'P', 'K', 0x03, 0x04}
	zipEmptySig = []byte{'P', 'K', 0x05, 0x06}
	gzipSig    = []byte{0x1f, 0x8b}
	parquetSig = []byte("PAR1")
	cfbSig     = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Detect inspects data's leading bytes, in the order spec.md §4.13
// names: ZIP central-directory signature (then a caller-visible
// filename probe via ZIPEntryNames for format-specific marker entries),
// an XML declaration followed by a root-element match, a Gnumeric gzip
// signature, a Parquet trailing magic, else Unknown. A legacy CFB/OLE2
// compound-file signature is checked last, extending the spec's list
// with the "xls-xml vs CFB-based legacy binary" distinction
// (SPEC_FULL.md DOMAIN STACK).
func Detect(data []byte) Format {
	if bytes.HasPrefix(data, zipSig) || bytes.HasPrefix(data, zipEmptySig) {
		return ZIPPackage
	}
	if root, ok := xmlRootElement(data); ok {
		if strings.HasSuffix(root, ":Workbook") && looksGnumeric(data) {
			return GnumericXML
		}
		return XMLDocument
	}
	if bytes.HasPrefix(data, gzipSig) && gunzipLooksXML(data) {
		return GnumericXML
	}
	if len(data) >= 4 && bytes.Equal(data[len(data)-4:], parquetSig) && bytes.HasPrefix(data, parquetSig) {
		return Parquet
	}
	if bytes.HasPrefix(data, cfbSig) {
		return LegacyCompoundFile
	}
	return Unknown
}

// xmlRootElement reports the local name of data's root element,
// qualified as "<namespace URI>:<local>" when the element is in a
// namespace, provided data opens with whitespace and/or an XML
// declaration/processing instructions before it. It reads at most the
// first start element and never errors the caller's input — a
// non-well-formed prefix simply yields ok=false.
func xmlRootElement(data []byte) (name string, ok bool) {
	trimmed := bytes.TrimLeft(data, " \t\r\n﻿")
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return "", false
	}
	dec := xml.NewDecoder(bytes.NewReader(trimmed))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		if se, isStart := tok.(xml.StartElement); isStart {
			if se.Name.Space != "" {
				return se.Name.Space + ":" + se.Name.Local, true
			}
			return se.Name.Local, true
		}
	}
}

// looksGnumeric reports whether an XML document's root element carries
// Gnumeric's namespace URI, distinguishing it from an arbitrary
// "Workbook"-rooted format-specific XML dialect (e.g. SpreadsheetML
// 2003 xls-xml, which also roots at "Workbook").
func looksGnumeric(data []byte) bool {
	return bytes.Contains(data[:min(len(data), 512)], []byte("http://www.gnumeric.org/"))
}

// gunzipLooksXML decompresses just enough of a gzip-framed payload to
// confirm it unwraps to XML, matching Gnumeric's ".gnumeric" container
// format (a gzipped XML document with no ".gz" extension requirement).
func gunzipLooksXML(data []byte) bool {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return false
	}
	defer zr.Close()
	buf := make([]byte, 512)
	n, _ := zr.Read(buf)
	if n == 0 {
		return false
	}
	_, ok := xmlRootElement(buf[:n])
	return ok
}

// ZIPEntryNames returns the local file names recorded in a ZIP
// package's central directory, without extracting any entry content —
// the "file-name probe for format-specific marker entries" spec.md
// §4.13 describes a driver running after Detect reports ZIPPackage
// (e.g. "[Content_Types].xml" for OOXML, "mimetype" for ODF).
func ZIPEntryNames(data []byte) []string {
	eocd := findEndOfCentralDirectory(data)
	if eocd < 0 {
		return nil
	}
	count := binary.LittleEndian.Uint16(data[eocd+10 : eocd+12])
	cdOffset := binary.LittleEndian.Uint32(data[eocd+16 : eocd+20])
	names := make([]string, 0, count)
	pos := int(cdOffset)
	for i := uint16(0); i < count; i++ {
		if pos+46 > len(data) || !bytes.Equal(data[pos:pos+4], []byte{'P', 'K', 0x01, 0x02}) {
			break
		}
		nameLen := int(binary.LittleEndian.Uint16(data[pos+28 : pos+30]))
		extraLen := int(binary.LittleEndian.Uint16(data[pos+30 : pos+32]))
		commentLen := int(binary.LittleEndian.Uint16(data[pos+32 : pos+34]))
		nameStart := pos + 46
		if nameStart+nameLen > len(data) {
			break
		}
		names = append(names, string(data[nameStart:nameStart+nameLen]))
		pos = nameStart + nameLen + extraLen + commentLen
	}
	return names
}

// findEndOfCentralDirectory scans backward for the ZIP
// end-of-central-directory record signature, bounded to the longest
// possible trailer (22-byte record plus a comment of at most 65535 bytes).
func findEndOfCentralDirectory(data []byte) int {
	maxScan := len(data)
	if maxScan > 65535+22 {
		maxScan = 65535 + 22
	}
	tail := data[len(data)-maxScan:]
	idx := bytes.LastIndex(tail, zipEmptySig)
	if idx < 0 {
		return -1
	}
	return len(data) - maxScan + idx
}

// HasEntry reports whether name appears among data's ZIP entry names,
// a convenience wrapper around ZIPEntryNames for the common
// single-marker-file probe.
func HasEntry(data []byte, name string) bool {
	for _, n := range ZIPEntryNames(data) {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
