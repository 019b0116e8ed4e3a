package main

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/milad/energyusage/internal/domain"
	"github.com/milad/energyusage/internal/service"
	grpcserver "github.com/milad/energyusage/internal/transport/grpc"
)

// querier is what the query commands need, served locally or by spendingd.
type querier interface {
	Spending(ctx context.Context, start, end *time.Time) (domain.Spending, error)
	Averages(ctx context.Context, q service.PeriodQuery) ([]domain.Spending, error)
	Totals(ctx context.Context, q service.PeriodQuery) ([]domain.Spending, error)
}

var (
	_ querier = (*service.SpendingService)(nil)
	_ querier = (*remoteQuerier)(nil)
)

type remoteQuerier struct {
	client *grpcserver.Client
}

func (r *remoteQuerier) Spending(ctx context.Context, start, end *time.Time) (domain.Spending, error) {
	resp, err := r.client.GetSpending(ctx, &grpcserver.GetSpendingRequest{
		Start: grpcserver.Timestamp(start),
		End:   grpcserver.Timestamp(end),
	})
	if err != nil {
		return domain.Spending{}, err
	}
	return grpcserver.FromWire(resp.Spending), nil
}

func (r *remoteQuerier) Averages(ctx context.Context, q service.PeriodQuery) ([]domain.Spending, error) {
	resp, err := r.client.ListAverages(ctx, &grpcserver.ListAveragesRequest{
		Period:  string(q.Period),
		GapDays: int32(q.GapDays),
		Start:   grpcserver.Timestamp(q.Start),
		End:     grpcserver.Timestamp(q.End),
	})
	if err != nil {
		return nil, err
	}
	return grpcserver.FromWireList(resp.Periods), nil
}

func (r *remoteQuerier) Totals(ctx context.Context, q service.PeriodQuery) ([]domain.Spending, error) {
	resp, err := r.client.ListTotals(ctx, &grpcserver.ListTotalsRequest{
		Period: string(q.Period),
		Start:  grpcserver.Timestamp(q.Start),
		End:    grpcserver.Timestamp(q.End),
	})
	if err != nil {
		return nil, err
	}
	return grpcserver.FromWireList(resp.Periods), nil
}

// withQuerier runs fn against spendingd at --addr when set, otherwise against
// the local store.
func withQuerier(fn func(querier) error) error {
	if serverAddr == "" {
		return withService(func(svc *service.SpendingService) error { return fn(svc) })
	}

	conn, err := grpc.NewClient(serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial %s: %w", serverAddr, err)
	}
	defer conn.Close()

	return fn(&remoteQuerier{client: grpcserver.NewClient(conn)})
}
