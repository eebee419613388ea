package kif

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

var ErrUnsupportedEncoding = errors.New("kif: unsupported text encoding")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode 接受 UTF-8（可带 BOM）或 Shift-JIS 编码的 KIF。
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	reader := transform.NewReader(bytes.NewReader(data), japanese.ShiftJIS.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedEncoding, err)
	}
	if !utf8.Valid(decoded) {
		return "", ErrUnsupportedEncoding
	}
	return string(decoded), nil
}

// EncodeShiftJIS 传统 .kif 文件使用 Shift-JIS。
func EncodeShiftJIS(text string) ([]byte, error) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedEncoding, err)
	}
	return out, nil
}
