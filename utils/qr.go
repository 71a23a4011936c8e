package utils

import (
	"github.com/skip2/go-qrcode"
)

// GenerateQRCode render nội dung thành PNG bytes, size là cạnh ảnh (pixel)
func GenerateQRCode(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}
