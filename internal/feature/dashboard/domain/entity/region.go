// Package entity はダッシュボードページの描画領域とそのスナップショットを定義します。
package entity

import (
	"encoding/json"
	"time"
)

// Region はページ上で個別に更新される描画領域の名前です。
type Region string

const (
	RegionPriceText      Region = "price_text"
	RegionAssigneeTable  Region = "assignee_table"
	RegionIssueTypeChart Region = "issuetype_chart"
	RegionStatusChart    Region = "status_chart"
	RegionPriceChart     Region = "price_chart"
)

// TrackerRegions はトラッカー更新で書き換わる領域です。
var TrackerRegions = []Region{RegionAssigneeTable, RegionIssueTypeChart, RegionStatusChart}

// QuoteRegions は株価更新で書き換わる領域です。
var QuoteRegions = []Region{RegionPriceText, RegionPriceChart}

// AllRegions returns every region in page order.
func AllRegions() []Region {
	return []Region{RegionPriceText, RegionAssigneeTable, RegionIssueTypeChart, RegionStatusChart, RegionPriceChart}
}

// ParseRegion はURLパラメータなどから既知の領域名を解決します。
func ParseRegion(s string) (Region, bool) {
	for _, r := range AllRegions() {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Snapshot は領域に現在描画されている値です。
// Stale が true の場合、直近の更新は失敗しており Data は以前の値（またはプレースホルダー）です。
type Snapshot struct {
	Region    Region          `json:"region"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
	Stale     bool            `json:"stale"`
	Error     string          `json:"error,omitempty"`
}

// RegionStatus は /healthz で報告する領域ごとの状態です。
type RegionStatus struct {
	Region    Region     `json:"region"`
	Populated bool       `json:"populated"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Stale     bool       `json:"stale"`
}
