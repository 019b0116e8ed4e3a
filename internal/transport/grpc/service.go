package grpcserver

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "energyusage.v1.SpendingService"

const (
	getSpendingMethod  = "/" + serviceName + "/GetSpending"
	listAveragesMethod = "/" + serviceName + "/ListAverages"
	listTotalsMethod   = "/" + serviceName + "/ListTotals"
	listReadingsMethod = "/" + serviceName + "/ListReadings"
)

// SpendingServiceServer is the server API for energyusage.v1.SpendingService.
type SpendingServiceServer interface {
	GetSpending(context.Context, *GetSpendingRequest) (*GetSpendingResponse, error)
	ListAverages(context.Context, *ListAveragesRequest) (*ListPeriodsResponse, error)
	ListTotals(context.Context, *ListTotalsRequest) (*ListPeriodsResponse, error)
	ListReadings(context.Context, *ListReadingsRequest) (*ListReadingsResponse, error)
}

func RegisterSpendingServiceServer(s grpc.ServiceRegistrar, srv SpendingServiceServer) {
	s.RegisterService(&spendingServiceDesc, srv)
}

var spendingServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SpendingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetSpending", Handler: getSpendingHandler},
		{MethodName: "ListAverages", Handler: listAveragesHandler},
		{MethodName: "ListTotals", Handler: listTotalsHandler},
		{MethodName: "ListReadings", Handler: listReadingsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "energyusage/v1/spending.proto",
}

func getSpendingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetSpendingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SpendingServiceServer).GetSpending(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getSpendingMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SpendingServiceServer).GetSpending(ctx, req.(*GetSpendingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listAveragesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListAveragesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SpendingServiceServer).ListAverages(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listAveragesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SpendingServiceServer).ListAverages(ctx, req.(*ListAveragesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listTotalsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListTotalsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SpendingServiceServer).ListTotals(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listTotalsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SpendingServiceServer).ListTotals(ctx, req.(*ListTotalsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listReadingsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListReadingsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SpendingServiceServer).ListReadings(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listReadingsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SpendingServiceServer).ListReadings(ctx, req.(*ListReadingsRequest))
	}
	return interceptor(ctx, in, info, handler)
}
