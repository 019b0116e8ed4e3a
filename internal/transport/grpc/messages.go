package grpcserver

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/milad/energyusage/internal/domain"
)

// Spending is one result window on the wire. Usage keeps full precision.
type Spending struct {
	Start *timestamppb.Timestamp `json:"start"`
	End   *timestamppb.Timestamp `json:"end"`
	Usage domain.Decimal         `json:"usage"`
}

type GetSpendingRequest struct {
	Start *timestamppb.Timestamp `json:"start,omitempty"`
	End   *timestamppb.Timestamp `json:"end,omitempty"`
}

type GetSpendingResponse struct {
	Spending Spending `json:"spending"`
}

type ListAveragesRequest struct {
	// Period is daily, weekly, monthly or gap.
	Period  string                 `json:"period"`
	GapDays int32                  `json:"gap_days,omitempty"`
	Start   *timestamppb.Timestamp `json:"start,omitempty"`
	End     *timestamppb.Timestamp `json:"end,omitempty"`
}

type ListTotalsRequest struct {
	// Period is weekly or monthly.
	Period string                 `json:"period"`
	Start  *timestamppb.Timestamp `json:"start,omitempty"`
	End    *timestamppb.Timestamp `json:"end,omitempty"`
}

type ListReadingsRequest struct {
	Start     *timestamppb.Timestamp `json:"start,omitempty"`
	End       *timestamppb.Timestamp `json:"end,omitempty"`
	PageSize  int32                  `json:"page_size,omitempty"`
	PageToken string                 `json:"page_token,omitempty"`
}

type Reading struct {
	Time  *timestamppb.Timestamp `json:"time"`
	Value domain.Decimal         `json:"value"`
}

type ListReadingsResponse struct {
	Readings      []Reading `json:"readings"`
	NextPageToken string    `json:"next_page_token,omitempty"`
}

type ListPeriodsResponse struct {
	Periods []Spending `json:"periods"`
}

func toWire(s domain.Spending) Spending {
	return Spending{Start: timestamppb.New(s.Start), End: timestamppb.New(s.End), Usage: s.Usage}
}

func toWireList(list []domain.Spending) []Spending {
	out := make([]Spending, 0, len(list))
	for _, s := range list {
		out = append(out, toWire(s))
	}
	return out
}

// FromWire converts a wire result back into the domain type.
func FromWire(s Spending) domain.Spending {
	return domain.Spending{Start: s.Start.AsTime(), End: s.End.AsTime(), Usage: s.Usage}
}

func FromWireList(list []Spending) []domain.Spending {
	out := make([]domain.Spending, 0, len(list))
	for _, s := range list {
		out = append(out, FromWire(s))
	}
	return out
}

// Timestamp converts an optional bound for a request.
func Timestamp(t *time.Time) *timestamppb.Timestamp {
	if t == nil {
		return nil
	}
	return timestamppb.New(*t)
}

func fromProtoRange(start, end *timestamppb.Timestamp) (*time.Time, *time.Time, error) {
	var (
		s *time.Time
		e *time.Time
	)
	if start != nil {
		if err := start.CheckValid(); err != nil {
			return nil, nil, err
		}
		t := start.AsTime().UTC()
		s = &t
	}
	if end != nil {
		if err := end.CheckValid(); err != nil {
			return nil, nil, err
		}
		t := end.AsTime().UTC()
		e = &t
	}
	return s, e, nil
}
