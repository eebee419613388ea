package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// 消息是普通 Go 结构体，用 JSON 编解码代替 protobuf。
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return codecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
