package detect

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/richardlehane/mscfb"
	"golang.org/x/crypto/md4"
)

// EncryptionInfo reports the handful of fields a driver needs to decide
// whether it can attempt to decrypt a CompoundFileEncryptedPackage
// container before handing it to a format-specific decoder (out of
// scope here per spec.md §1, but the probe that distinguishes "this
// needs a password" from "this is just unreadable" belongs with
// detection).
type EncryptionInfo struct {
	VersionMajor, VersionMinor uint16
	// Fingerprint is an MD4 digest of the EncryptionInfo stream's fixed
	// header, used only to recognize known header layouts by a stable
	// short identifier rather than to perform any actual cryptographic
	// verification.
	Fingerprint [md4.Size]byte
}

// ProbeEncryption reads just the EncryptionInfo stream's header from a
// CFB container already classified as CompoundFileEncryptedPackage and
// reports its version fields and header fingerprint. It returns
// ok=false if data isn't a CFB container or carries no EncryptionInfo
// stream.
func ProbeEncryption(data []byte) (info EncryptionInfo, ok bool) {
	r, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return EncryptionInfo{}, false
	}
	for {
		entry, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		if entry.Name != "EncryptionInfo" {
			continue
		}
		header := make([]byte, 8)
		n, _ := io.ReadFull(entry, header)
		if n < 8 {
			return EncryptionInfo{}, false
		}
		h := md4.New()
		h.Write(header)
		info.VersionMajor = binary.LittleEndian.Uint16(header[0:2])
		info.VersionMinor = binary.LittleEndian.Uint16(header[2:4])
		copy(info.Fingerprint[:], h.Sum(nil))
		return info, true
	}
	return EncryptionInfo{}, false
}

// IsCryptoAPIRC4 reports whether info's version fields match the
// "Office Binary Document RC4 CryptoAPI Encryption" major/minor pair
// (version 2, minor 2 through 4), the scheme every pre-2007 encrypted
// legacy workbook uses.
func (info EncryptionInfo) IsCryptoAPIRC4() bool {
	return info.VersionMajor == 2 && info.VersionMinor >= 2 && info.VersionMinor <= 4
}

// IsAgileEncryption reports whether info's version fields match the
// ECMA-376 "Agile Encryption" scheme (version 4, minor 4) OOXML
// packages wrapped in CompoundFileEncryptedPackage use.
func (info EncryptionInfo) IsAgileEncryption() bool {
	return info.VersionMajor == 4 && info.VersionMinor == 4
}
