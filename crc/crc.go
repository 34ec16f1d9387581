// Package crc is the CRC8 checksum (poly 0x93) guarding journal
// records against torn writes and bit rot.
package crc

const Poly93 byte = 0x93

var table93 [256]byte

func init() {
	for i := 0; i < 256; i++ {
		crc := byte(i)
		for bit := 0; bit < 8; bit++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ Poly93
			} else {
				crc <<= 1
			}
		}
		table93[i] = crc
	}
}

func Next(crc, data byte) byte { return table93[crc^data] }

func Checksum(bs []byte) byte {
	var crc byte
	for _, b := range bs {
		crc = table93[crc^b]
	}
	return crc
}
