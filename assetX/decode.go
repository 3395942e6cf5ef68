package assetX

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/corona10/goimagehash"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type decodeFunc func(path string) (Resource, error)

func decodeImage(path string) (Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return Resource{}, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return Resource{}, fmt.Errorf("解码图片 %s: %w", path, err)
	}
	return Resource{Kind: KindImage, Image: newImageAsset(img, format)}, nil
}

func newImageAsset(img image.Image, format string) *ImageAsset {
	b := img.Bounds()
	asset := &ImageAsset{Image: img, Format: format, Width: b.Dx(), Height: b.Dy()}
	// 哈希失败不影响图片本身可用
	if hash, err := goimagehash.AverageHash(img); err == nil {
		asset.Hash = hash
	}
	return asset
}

func decodeIcon(path string) (Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Resource{}, err
	}
	if strings.EqualFold(filepath.Ext(path), ".png") {
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return Resource{}, fmt.Errorf("解码图标 %s: %w", path, err)
		}
		b := img.Bounds()
		return Resource{Kind: KindIcon, Icon: &IconAsset{
			Entries: []IconEntry{{Width: b.Dx(), Height: b.Dy(), BitCount: 32, Size: len(data), PNG: true}},
			Image:   img,
			Data:    data,
		}}, nil
	}
	icon, err := parseIco(data)
	if err != nil {
		return Resource{}, fmt.Errorf("解析图标 %s: %w", path, err)
	}
	return Resource{Kind: KindIcon, Icon: icon}, nil
}

func decodeSvg(path string) (Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Resource{}, err
	}
	content := string(data)
	if !strings.Contains(content, "<svg") {
		return Resource{}, fmt.Errorf("%w: %s 不是 SVG 文档", ErrUnsupportedFormat, path)
	}
	return Resource{Kind: KindSvg, Svg: content}, nil
}

func decodeMedia(kind Kind) decodeFunc {
	return func(path string) (Resource, error) {
		st, err := os.Stat(path)
		if err != nil {
			return Resource{}, err
		}
		if st.IsDir() {
			return Resource{}, fmt.Errorf("%w: %s 是目录", ErrUnsupportedFormat, path)
		}
		return Resource{Kind: kind, Media: &MediaAsset{
			Path:    path,
			Format:  strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
			Size:    st.Size(),
			ModTime: st.ModTime(),
		}}, nil
	}
}
