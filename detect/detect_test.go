package detect_test

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/go-orcus/orcus/detect"
)

func buildZIP(entries map[string]string) []byte {
	var buf bytes.Buffer
	buf.WriteString("PK\x03\x04")
	buf.Write(make([]byte, 26))
	centralStart := buf.Len()
	var central bytes.Buffer
	count := 0
	for name, content := range entries {
		_ = content
		central.WriteString("PK\x01\x02")
		central.Write(make([]byte, 24))
		central.Write([]byte{byte(len(name)), byte(len(name) >> 8)})
		central.Write(make([]byte, 16))
		central.WriteString(name)
		count++
	}
	buf.Write(central.Bytes())
	buf.WriteString("PK\x05\x06")
	buf.Write(make([]byte, 4))
	buf.Write([]byte{byte(count), byte(count >> 8)})
	buf.Write([]byte{byte(count), byte(count >> 8)})
	buf.Write(make([]byte, 4))
	buf.Write([]byte{
		byte(centralStart), byte(centralStart >> 8), byte(centralStart >> 16), byte(centralStart >> 24),
	})
	buf.Write(make([]byte, 2))
	return buf.Bytes()
}

func TestDetectZIPPackage(t *testing.T) {
	data := buildZIP(map[string]string{"[Content_Types].xml": ""})
	if got := detect.Detect(data); got != detect.ZIPPackage {
		t.Fatalf("Detect = %v, want ZIPPackage", got)
	}
	if !detect.HasEntry(data, "[Content_Types].xml") {
		t.Fatalf("HasEntry = false, want true")
	}
	if detect.HasEntry(data, "mimetype") {
		t.Fatalf("HasEntry(mimetype) = true, want false")
	}
}

func TestDetectXMLDocument(t *testing.T) {
	data := []byte(`<?xml version="1.0"?><Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"></Workbook>`)
	if got := detect.Detect(data); got != detect.XMLDocument {
		t.Fatalf("Detect = %v, want XMLDocument", got)
	}
}

func TestDetectGnumericGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte(`<?xml version="1.0"?><gmr:Workbook xmlns:gmr="http://www.gnumeric.org/v10.dtd"></gmr:Workbook>`))
	zw.Close()

	if got := detect.Detect(buf.Bytes()); got != detect.GnumericXML {
		t.Fatalf("Detect = %v, want GnumericXML", got)
	}
}

func TestDetectParquet(t *testing.T) {
	data := append([]byte("PAR1"), make([]byte, 16)...)
	data = append(data, "PAR1"...)
	if got := detect.Detect(data); got != detect.Parquet {
		t.Fatalf("Detect = %v, want Parquet", got)
	}
}

func TestDetectLegacyCompoundFile(t *testing.T) {
	sig := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	data := append(sig, make([]byte, 512)...)
	if got := detect.Detect(data); got != detect.LegacyCompoundFile {
		t.Fatalf("Detect = %v, want LegacyCompoundFile", got)
	}
}

func TestDetectUnknown(t *testing.T) {
	if got := detect.Detect([]byte("not a spreadsheet")); got != detect.Unknown {
		t.Fatalf("Detect = %v, want Unknown", got)
	}
}
