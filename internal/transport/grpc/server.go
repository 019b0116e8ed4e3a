package grpcserver

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/milad/energyusage/internal/domain"
	"github.com/milad/energyusage/internal/service"
	"github.com/milad/energyusage/internal/spending"
)

// SpendingQuerier is the subset of the spending service the server exposes.
type SpendingQuerier interface {
	Spending(ctx context.Context, start, end *time.Time) (domain.Spending, error)
	Averages(ctx context.Context, q service.PeriodQuery) ([]domain.Spending, error)
	Totals(ctx context.Context, q service.PeriodQuery) ([]domain.Spending, error)
	ListReadings(ctx context.Context, start, end *time.Time, pageSize int, pageToken string) (service.ReadingsPage, error)
}

var _ SpendingQuerier = (*service.SpendingService)(nil)

type Server struct {
	svc SpendingQuerier
}

var _ SpendingServiceServer = (*Server)(nil)

func New(svc SpendingQuerier) *Server {
	return &Server{svc: svc}
}

func (s *Server) GetSpending(ctx context.Context, req *GetSpendingRequest) (*GetSpendingResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	start, end, err := fromProtoRange(req.Start, req.End)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	res, err := s.svc.Spending(ctx, start, end)
	if err != nil {
		return nil, toStatus(err)
	}
	return &GetSpendingResponse{Spending: toWire(res)}, nil
}

func (s *Server) ListAverages(ctx context.Context, req *ListAveragesRequest) (*ListPeriodsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	period, err := service.ParsePeriod(req.Period)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if period == service.PeriodGap && req.GapDays <= 0 {
		return nil, status.Error(codes.InvalidArgument, "gap_days must be positive for period gap")
	}
	start, end, err := fromProtoRange(req.Start, req.End)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	res, err := s.svc.Averages(ctx, service.PeriodQuery{
		Period:  period,
		GapDays: int(req.GapDays),
		Start:   start,
		End:     end,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListPeriodsResponse{Periods: toWireList(res)}, nil
}

func (s *Server) ListTotals(ctx context.Context, req *ListTotalsRequest) (*ListPeriodsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	period, err := service.ParsePeriod(req.Period)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	start, end, err := fromProtoRange(req.Start, req.End)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	res, err := s.svc.Totals(ctx, service.PeriodQuery{Period: period, Start: start, End: end})
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListPeriodsResponse{Periods: toWireList(res)}, nil
}

func (s *Server) ListReadings(ctx context.Context, req *ListReadingsRequest) (*ListReadingsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	start, end, err := fromProtoRange(req.Start, req.End)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	page, err := s.svc.ListReadings(ctx, start, end, int(req.PageSize), req.PageToken)
	if err != nil {
		return nil, toStatus(err)
	}

	out := make([]Reading, 0, len(page.Readings))
	for _, r := range page.Readings {
		out = append(out, Reading{Time: timestamppb.New(r.Time), Value: r.Value})
	}
	return &ListReadingsResponse{Readings: out, NextPageToken: page.NextPageToken}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, spending.ErrInvalidRange),
		errors.Is(err, spending.ErrInvalidDayGap),
		errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, service.ErrInvalidPagination):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
