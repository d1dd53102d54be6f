package converter

import (
	"fmt"
	"time"

	dto "slotinsight_backend/internal/api/dto/analytics"
	"slotinsight_backend/internal/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339
)

// ToFilter - разбирает фильтр запроса в модель.
// Пустые даты означают отсутствие ограничения, null по играм - все игры
func ToFilter(req dto.FilterRequest) (model.Filter, error) {
	var f model.Filter

	if req.From != "" {
		from, err := time.Parse(dateLayout, req.From)
		if err != nil {
			return f, fmt.Errorf("invalid from date %q", req.From)
		}
		f.From = from
	}
	if req.To != "" {
		to, err := time.Parse(dateLayout, req.To)
		if err != nil {
			return f, fmt.Errorf("invalid to date %q", req.To)
		}
		f.To = to
	}
	if req.GameIDs != nil {
		f.GameIDs = make(map[int64]struct{}, len(req.GameIDs))
		for _, id := range req.GameIDs {
			f.GameIDs[id] = struct{}{}
		}
	}

	return f, nil
}

func ToFilterResponse(f model.Filter, available []int64) dto.FilterResponse {
	resp := dto.FilterResponse{AllGame: available}
	if !f.From.IsZero() {
		resp.From = f.From.Format(dateLayout)
	}
	if !f.To.IsZero() {
		resp.To = f.To.Format(dateLayout)
	}
	if f.GameIDs != nil {
		resp.GameIDs = make([]int64, 0, len(f.GameIDs))
		for _, id := range available {
			if _, ok := f.GameIDs[id]; ok {
				resp.GameIDs = append(resp.GameIDs, id)
			}
		}
	}
	return resp
}

func ToKPIResponse(rep model.KPIReport) dto.KPIResponse {
	resp := dto.KPIResponse{
		Turnover:     rep.Turnover,
		TotalPayout:  rep.TotalPayout,
		GGR:          rep.GGR,
		RTP:          rep.RTP,
		SpinCount:    rep.SpinCount,
		AvgBet:       rep.AvgBet,
		HitRate:      rep.HitRate,
		TotalUsers:   rep.TotalUsers,
		SpinsPerUser: rep.SpinsPerUser,
	}
	for _, t := range rep.Thresholds {
		resp.Thresholds = append(resp.Thresholds, dto.ThresholdCount{
			Threshold: t.Threshold,
			Users:     t.Users,
		})
	}
	return resp
}

func ToCohortResponse(rep model.CohortReport) dto.CohortResponse {
	resp := dto.CohortResponse{
		AvgDAU:       rep.AvgDAU,
		AvgNewUsers:  rep.AvgNewUsers,
		AvgRetention: rep.AvgRetention,
	}
	for _, p := range rep.DAU {
		resp.DAU = append(resp.DAU, dto.DatePoint{Date: p.Date, Users: p.Users})
	}
	for _, p := range rep.NewUsers {
		resp.NewUsers = append(resp.NewUsers, dto.DatePoint{Date: p.Date, Users: p.Users})
	}
	for _, p := range rep.Retention {
		resp.Retention = append(resp.Retention, dto.RetentionPoint{Date: p.Date, Rate: p.Rate})
	}
	return resp
}

func ToGameStatsResponse(stats []model.GameAggregate) []dto.GameStat {
	result := make([]dto.GameStat, 0, len(stats))
	for _, g := range stats {
		result = append(result, dto.GameStat{
			GameID:        g.GameID,
			Turnover:      g.Turnover,
			Payout:        g.Payout,
			GGR:           g.GGR,
			RTP:           g.RTP,
			AvgBet:        g.AvgBet,
			Volatility:    g.Volatility,
			HitRate:       g.HitRate,
			WinnerPct:     g.WinnerPct,
			TurnoverShare: g.TurnoverShare,
			PayoutShare:   g.PayoutShare,
			Bands: dto.WinBands{
				Small: float64(g.Bands.Small),
				Big:   float64(g.Bands.Big),
				Mega:  float64(g.Bands.Mega),
				Super: float64(g.Bands.Super),
			},
			BandsPct: dto.WinBands{
				Small: g.BandsPct.Small,
				Big:   g.BandsPct.Big,
				Mega:  g.BandsPct.Mega,
				Super: g.BandsPct.Super,
			},
			AvgMultiplier: g.AvgMultiplier,
		})
	}
	return result
}

func ToUserOptionsResponse(options []model.UserOption) []dto.UserOption {
	result := make([]dto.UserOption, 0, len(options))
	for _, opt := range options {
		result = append(result, dto.UserOption{
			UserID: opt.UserID,
			RTP:    opt.RTP,
			Spins:  opt.Spins,
		})
	}
	return result
}

func ToUserResponse(agg model.UserAggregate) dto.UserResponse {
	return dto.UserResponse{
		UserID:             agg.UserID,
		TotalBet:           agg.TotalBet,
		TotalPayout:        agg.TotalPayout,
		PnL:                agg.PnL,
		SpinCount:          agg.SpinCount,
		RTP:                agg.RTP,
		MaxWin:             agg.MaxWin,
		Tags:               agg.Tags,
		GGRSharePct:        agg.GGRShare.Pct,
		GGRShareApplicable: agg.GGRShare.Applicable,
	}
}

func ToUserInsightResponse(insight model.UserInsight) dto.UserInsightResponse {
	resp := dto.UserInsightResponse{
		User: ToUserResponse(insight.Aggregate),
	}
	for _, p := range insight.Journey {
		resp.Journey = append(resp.Journey, dto.JourneyPoint{
			Seq:      p.Seq,
			At:       p.At.Format(timeLayout),
			GameID:   p.GameID,
			Amount:   p.Amount,
			CumPnL:   p.CumPnL,
			Switched: p.Switched,
		})
	}
	for _, p := range insight.PoolTrend {
		resp.PoolTrend = append(resp.PoolTrend, dto.PoolPoint{
			Seq:  p.Seq,
			At:   p.At.Format(timeLayout),
			Pool: p.Pool.String(),
		})
	}
	return resp
}

func ToTransactionRows(txs []model.Transaction) []dto.TransactionRow {
	rows := make([]dto.TransactionRow, 0, len(txs))
	for _, t := range txs {
		row := dto.TransactionRow{
			ID:         t.ID,
			CreateDate: t.CreateDate.Format(timeLayout),
			UserID:     t.UserID,
			GameID:     t.GameID,
			Amount:     t.Amount,
			Type:       t.TypeLabel(),
		}
		if t.HasPool {
			row.Pool = t.Pool.String()
		}
		rows = append(rows, row)
	}
	return rows
}

func ToCheckpointsResponse(checkpoints []model.Checkpoint, index int, playing bool) dto.CheckpointsResponse {
	resp := dto.CheckpointsResponse{
		Checkpoints: make([]dto.Checkpoint, 0, len(checkpoints)),
		Index:       index,
		Playing:     playing,
	}
	for _, c := range checkpoints {
		resp.Checkpoints = append(resp.Checkpoints, dto.Checkpoint{
			Index: c.Index,
			At:    c.At.Format(timeLayout),
		})
	}
	return resp
}

func ToSnapshotResponse(snap model.Snapshot) dto.SnapshotResponse {
	resp := dto.SnapshotResponse{
		Index: snap.Index,
		At:    snap.At.Format(timeLayout),
		Bounds: dto.AxisBounds{
			XMax: snap.Bounds.XMax,
			YMin: snap.Bounds.YMin,
			YMax: snap.Bounds.YMax,
		},
	}
	for _, p := range snap.Players {
		resp.Players = append(resp.Players, dto.PlayerPoint{
			UserID: p.UserID,
			CumBet: p.CumBet,
			CumPnL: p.CumPnL,
			Status: p.Status,
		})
	}
	return resp
}
