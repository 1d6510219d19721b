package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strconv"

	"miniSeq/interface/redis"
	"miniSeq/lib/logger"
	"miniSeq/redis/protocol"
)

// 解析客户端发送的RESP内容

// Payload 存储了解析得到的命令或者错误
type Payload struct {
	Data redis.Reply
	Err  error
}

var errNoProtocol = errors.New("no protocol")

// ParseStream 解析客户端请求，结果通过管道异步返回
func ParseStream(reader io.Reader) <-chan *Payload {
	ch := make(chan *Payload)
	go parse0(reader, ch)
	return ch
}

// ParseBytes reads data from []byte and return all replies
func ParseBytes(data []byte) ([]redis.Reply, error) {
	ch := ParseStream(bytes.NewReader(data))
	var results []redis.Reply
	for payload := range ch {
		if payload == nil {
			return nil, errNoProtocol
		}
		if payload.Err != nil {
			if payload.Err == io.EOF {
				break
			}
			return nil, payload.Err
		}
		results = append(results, payload.Data)
	}
	return results, nil
}

// ParseOne 返回第一个解析到的内容
func ParseOne(data []byte) (redis.Reply, error) {
	ch := ParseStream(bytes.NewReader(data))
	payload := <-ch
	// 剩下的内容（通常只有EOF）需要读完，否则parse0会阻塞在发送上
	go func() {
		for range ch {
		}
	}()
	if payload == nil {
		return nil, errNoProtocol
	}
	return payload.Data, payload.Err
}

func parse0(rawReader io.Reader, ch chan<- *Payload) {
	defer func() {
		if err := recover(); err != nil {
			logger.Error(err, string(debug.Stack()))
			// 通知读取方结束，否则 ParseOne 会一直阻塞
			ch <- &Payload{Err: fmt.Errorf("protocol error: %v", err)}
			close(ch)
		}
	}()

	reader := bufio.NewReader(rawReader)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			ch <- &Payload{Err: err}
			close(ch)
			return
		}
		length := len(line)

		// 空行不处理
		if length <= 2 || line[length-2] != '\r' {
			continue
		}
		line = bytes.TrimSuffix(line, []byte{'\r', '\n'})
		switch line[0] {
		case '+':
			ch <- &Payload{
				Data: protocol.MakeStatusReply(string(line[1:])),
			}
		case '-':
			ch <- &Payload{
				Data: protocol.MakeErrReply(string(line[1:])),
			}
		case ':':
			value, err := strconv.ParseInt(string(line[1:]), 10, 64)
			if err != nil {
				protocolError(ch, "illegal number "+string(line[1:]))
				continue
			}
			ch <- &Payload{
				Data: protocol.MakeIntReply(value),
			}
		case '$':
			err = parseBulkString(line, reader, ch)
			if err != nil {
				ch <- &Payload{Err: err}
				close(ch)
				return
			}
		case '*':
			err = parseArray(line, reader, ch)
			if err != nil {
				ch <- &Payload{Err: err}
				close(ch)
				return
			}
		default:
			// inline命令，例如telnet直接输入的 "SLEN key"
			args := bytes.Fields(line)
			ch <- &Payload{
				Data: protocol.MakeMultiBulkReply(args),
			}
		}
	}
}

// readBulkBody 读取strLen个字节以及结尾的\r\n。
// 按实际读到的数据扩容，声明的长度再大也不会提前分配
func readBulkBody(reader *bufio.Reader, strLen int64) ([]byte, error) {
	var body bytes.Buffer
	if _, err := io.CopyN(&body, reader, strLen+2); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	b := body.Bytes()
	if b[strLen] != '\r' || b[strLen+1] != '\n' {
		return nil, errors.New("protocol error: bulk string not terminated by CRLF")
	}
	return b[:strLen], nil
}

// parseBulkString 解析 $3\r\nabc\r\n
func parseBulkString(header []byte, reader *bufio.Reader, ch chan<- *Payload) error {
	strLen, err := strconv.ParseInt(string(header[1:]), 10, 64)
	if err != nil || strLen < -1 || strLen > MaxBulkLen {
		protocolError(ch, "illegal bulk string header: "+string(header))
		return nil
	} else if strLen == -1 {
		ch <- &Payload{
			Data: protocol.MakeNullBulkReply(),
		}
		return nil
	}
	body, err := readBulkBody(reader, strLen)
	if err != nil {
		return err
	}
	ch <- &Payload{
		Data: protocol.MakeBulkReply(body),
	}
	return nil
}

// parseArray 解析数组类型（*开头）
//
//	*2\r\n
//	$4\r\n
//	SLEN\r\n
//	$1\r\n
//	k\r\n
func parseArray(header []byte, reader *bufio.Reader, ch chan<- *Payload) error {
	nStrs, err := strconv.ParseInt(string(header[1:]), 10, 64)
	if err != nil || nStrs < 0 || nStrs > MaxArrayLen {
		protocolError(ch, "illegal array header "+string(header[1:]))
		return nil
	} else if nStrs == 0 {
		ch <- &Payload{
			Data: protocol.MakeEmptyMultiBulkReply(),
		}
		return nil
	}

	lines := make([][]byte, 0, min64(nStrs, 64))
	for i := int64(0); i < nStrs; i++ {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return err
		}
		length := len(line)
		if length < 4 || line[length-2] != '\r' || line[0] != '$' {
			protocolError(ch, "illegal bulk string header "+string(line))
			return nil
		}
		strLen, err := strconv.ParseInt(string(line[1:length-2]), 10, 64)
		if err != nil || strLen < -1 || strLen > MaxBulkLen {
			protocolError(ch, "illegal bulk string length "+string(line))
			return nil
		}
		if strLen == -1 {
			lines = append(lines, []byte{})
			continue
		}
		body, err := readBulkBody(reader, strLen)
		if err != nil {
			return err
		}
		lines = append(lines, body)
	}
	ch <- &Payload{
		Data: protocol.MakeMultiBulkReply(lines),
	}
	return nil
}

func protocolError(ch chan<- *Payload, msg string) {
	err := errors.New("protocol error: " + msg)
	ch <- &Payload{Err: err}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
