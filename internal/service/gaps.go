package service

import (
	"errors"
	"sort"

	"ShowroomSync/internal/model"
)

// ErrNotFinalized 活动结束后上游仍在集計点数，本轮整组gap不可计算
var ErrNotFinalized = errors.New("service: 点数集計中，gap暂不可计算")

// ComputeGaps 对选中行集合计算上下位点差。
// 入参先按rank升序排序；最上位行无upper_gap，集合内最下位行无lower_gap（nil）——
// gap只相对选中的行计算，不是全活动范围，这是有意的设计。
// 任何一行点数仍在集計时整组短路，返回ErrNotFinalized且不带数值gap
func ComputeGaps(rows []model.RankedComparisonRow) ([]model.RankedComparisonRow, error) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Rank < rows[j].Rank
	})

	for i := range rows {
		rows[i].UpperGap = nil
		rows[i].LowerGap = nil
	}
	for i := range rows {
		if rows[i].PointPending {
			return rows, ErrNotFinalized
		}
	}

	for i := range rows {
		if i > 0 {
			g := absInt64(rows[i].Point - rows[i-1].Point)
			rows[i].UpperGap = &g
		}
		if i < len(rows)-1 {
			g := absInt64(rows[i].Point - rows[i+1].Point)
			rows[i].LowerGap = &g
		}
	}
	return rows, nil
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
