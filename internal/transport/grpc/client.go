package grpcserver

import (
	"context"

	"google.golang.org/grpc"
)

// Client calls energyusage.v1.SpendingService over an established connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) GetSpending(ctx context.Context, in *GetSpendingRequest, opts ...grpc.CallOption) (*GetSpendingResponse, error) {
	out := new(GetSpendingResponse)
	if err := c.cc.Invoke(ctx, getSpendingMethod, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAverages(ctx context.Context, in *ListAveragesRequest, opts ...grpc.CallOption) (*ListPeriodsResponse, error) {
	out := new(ListPeriodsResponse)
	if err := c.cc.Invoke(ctx, listAveragesMethod, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListTotals(ctx context.Context, in *ListTotalsRequest, opts ...grpc.CallOption) (*ListPeriodsResponse, error) {
	out := new(ListPeriodsResponse)
	if err := c.cc.Invoke(ctx, listTotalsMethod, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListReadings(ctx context.Context, in *ListReadingsRequest, opts ...grpc.CallOption) (*ListReadingsResponse, error) {
	out := new(ListReadingsResponse)
	if err := c.cc.Invoke(ctx, listReadingsMethod, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withJSON(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
}
