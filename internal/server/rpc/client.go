package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type Client struct {
	conn *grpc.ClientConn
}

// Dial 连接引擎服务。opts 追加在默认选项（明文、JSON 编码）之后。
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	}
	conn, err := grpc.NewClient(target, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("dial engine %s: %w", target, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) SelectMove(ctx context.Context, req *SelectMoveRequest) (*SelectMoveResponse, error) {
	out := new(SelectMoveResponse)
	if err := c.conn.Invoke(ctx, "/"+serviceName+"/SelectMove", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Validate(ctx context.Context, req *ValidateRequest) (*ValidateResponse, error) {
	out := new(ValidateResponse)
	if err := c.conn.Invoke(ctx, "/"+serviceName+"/Validate", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
