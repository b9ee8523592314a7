package entity

// AssigneeRow は担当者テーブルの1行です。
type AssigneeRow struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}
