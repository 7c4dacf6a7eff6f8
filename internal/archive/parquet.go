package archive

import (
	"bytes"
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// encodeParquet 在内存中将行序列编码为parquet列式二进制
func encodeParquet[T any](rows []T) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	w := parquet.NewGenericWriter[T](buf)
	if _, err := w.Write(rows); err != nil {
		return nil, fmt.Errorf("写入parquet失败: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("关闭parquet写入器失败: %w", err)
	}
	return buf, nil
}
