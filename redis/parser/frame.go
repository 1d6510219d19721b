package parser

import (
	"bytes"
	"errors"
	"strconv"
)

const (
	// MaxBulkLen 单个bulk string的最大长度，与redis的 proto-max-bulk-len 默认值一致
	MaxBulkLen = 512 << 20
	// MaxArrayLen 一个请求中最多的参数个数
	MaxArrayLen = 1024 * 1024
)

// ErrMalformedFrame 请求头无法解析，连接上剩下的数据已经没有意义
var ErrMalformedFrame = errors.New("protocol error: malformed request")

var crlf = []byte{'\r', '\n'}

// FrameLength 返回buf开头第一个完整请求的字节数，数据还不完整时返回0。
// 只检查长度，不做完整解析，真正的解析交给 ParseOne。
func FrameLength(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if buf[0] != '*' {
		// inline命令以\n结尾
		idx := bytes.IndexByte(buf, '\n')
		return idx + 1, nil
	}

	count, pos, err := readHeader(buf, 0, MaxArrayLen)
	if err != nil || pos == 0 {
		return 0, err
	}
	for i := int64(0); i < count; i++ {
		if pos >= len(buf) {
			return 0, nil
		}
		if buf[pos] != '$' {
			return 0, ErrMalformedFrame
		}
		var strLen int64
		strLen, pos, err = readHeader(buf, pos, MaxBulkLen)
		if err != nil || pos == 0 {
			return 0, err
		}
		if strLen < 0 {
			continue
		}
		// strLen已经有上限，这里不会溢出
		if strLen+2 > int64(len(buf)-pos) {
			return 0, nil
		}
		pos += int(strLen) + 2
	}
	return pos, nil
}

// readHeader 解析从start开始的 *N\r\n 或 $N\r\n，返回N以及下一行的起始位置，
// 行还不完整时返回的位置为0。N超过limit时认为请求非法。
func readHeader(buf []byte, start int, limit int64) (int64, int, error) {
	idx := bytes.Index(buf[start:], crlf)
	if idx < 0 {
		return 0, 0, nil
	}
	n, err := strconv.ParseInt(string(buf[start+1:start+idx]), 10, 64)
	if err != nil || n < -1 || n > limit {
		return 0, 0, ErrMalformedFrame
	}
	return n, start + idx + 2, nil
}
