package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// chunkSize — размер блока потокового чтения; файл целиком в память не грузим.
const chunkSize = 32 * 1024

// Reader считает SHA-256 контента в hex. Детерминирован: одинаковые байты
// всегда дают одинаковый отпечаток, имя файла и время загрузки не участвуют.
func Reader(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Bytes — удобный вариант для небольших буферов (тесты, мелкие вложения).
func Bytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
