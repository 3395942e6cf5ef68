package assetX

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/png"
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
)

var (
	pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

	errIcoHeader = errors.New("invalid ico header")
	errIcoEntry  = errors.New("ico entry out of range")
)

// parseIco 解析 ico 目录，尺寸最大的一项若内嵌 PNG 则解码为 Image
//
//	ICONDIR:      reserved(2)=0 type(2)=1 count(2)
//	ICONDIRENTRY: width(1) height(1) colors(1) reserved(1) planes(2) bitCount(2) bytes(4) offset(4)
func parseIco(data []byte) (*IconAsset, error) {
	if len(data) < icoHeaderSize {
		return nil, errIcoHeader
	}
	le := binary.LittleEndian
	if le.Uint16(data[0:]) != 0 || le.Uint16(data[2:]) != 1 {
		return nil, errIcoHeader
	}
	count := int(le.Uint16(data[4:]))
	if count == 0 || len(data) < icoHeaderSize+count*icoEntrySize {
		return nil, errIcoHeader
	}

	icon := &IconAsset{Entries: make([]IconEntry, 0, count), Data: data}
	best, bestArea := -1, -1
	offsets := make([]int, 0, count)
	for i := 0; i < count; i++ {
		e := data[icoHeaderSize+i*icoEntrySize:]
		w, h := int(e[0]), int(e[1])
		// 0 表示 256
		if w == 0 {
			w = 256
		}
		if h == 0 {
			h = 256
		}
		size := int(le.Uint32(e[8:]))
		offset := int(le.Uint32(e[12:]))
		if size <= 0 || offset < 0 || offset+size > len(data) || offset+size < offset {
			return nil, errIcoEntry
		}
		entry := IconEntry{
			Width:    w,
			Height:   h,
			BitCount: int(le.Uint16(e[6:])),
			Size:     size,
			PNG:      bytes.HasPrefix(data[offset:offset+size], pngSignature),
		}
		icon.Entries = append(icon.Entries, entry)
		offsets = append(offsets, offset)
		if area := w * h; area > bestArea || (area == bestArea && entry.BitCount > icon.Entries[best].BitCount) {
			best, bestArea = i, area
		}
	}

	if e := icon.Entries[best]; e.PNG {
		img, err := png.Decode(bytes.NewReader(data[offsets[best] : offsets[best]+e.Size]))
		if err != nil {
			return nil, err
		}
		icon.Image = img
	}
	return icon, nil
}
