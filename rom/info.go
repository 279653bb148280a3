package rom

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
)

// Digest returns the hex SHA-1 of the concatenated slices.
func Digest(parts ...[]byte) string {
	h := sha1.New()
	for _, p := range parts {
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// PrintInfo writes the cartridge summary used for regression testing images.
func PrintInfo(w io.Writer, img *Image) error {
	lines := []struct {
		name  string
		value string
	}{
		{"magic", fmt.Sprintf("%q", img.Magic[:])},
		{"format", format(img)},
		{"prg rom", fmt.Sprintf("%d bytes (%d x 16KB)", len(img.Prg), len(img.Prg)/PrgBankSize)},
		{"chr rom", fmt.Sprintf("%d bytes (%d x 8KB)", len(img.Chr), len(img.Chr)/ChrBankSize)},
		{"trainer", fmt.Sprintf("%v", len(img.Trainer) > 0)},
		{"battery", fmt.Sprintf("%v", img.Battery)},
		{"mapper", fmt.Sprintf("%d", img.Mapper)},
		{"mirroring", img.Mirroring.String()},
		{"tv system", img.TV.String()},
		{"prg sha1", Digest(img.Prg)},
		{"chr sha1", Digest(img.Chr)},
		{"sha1", Digest(img.Prg, img.Chr)},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-10s %s\n", l.name+":", l.value); err != nil {
			return err
		}
	}
	return nil
}

func format(img *Image) string {
	if img.NES2 {
		return "NES 2.0"
	}
	return "iNES"
}
