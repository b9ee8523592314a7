// Package entity はissuesフィーチャーのドメインモデルを定義します。
package entity

// UnassignedLabel は担当者のいない課題を集計する際のラベルです。
const UnassignedLabel = "unassigned"

// Field は集計に使う課題フィールドの名前です。
type Field string

const (
	FieldIssueType Field = "issuetype"
	FieldStatus    Field = "status"
	FieldAssignee  Field = "assignee"
)

// Issue はトラッカーから取得した課題1件を表します。
type Issue struct {
	Type     string  // 課題タイプ名（例: "Bug"）
	Status   string  // ステータス名（例: "Open"）
	Assignee *string // 担当者の表示名。未割り当ての場合はnil
}

// AssigneeLabel は集計用の担当者ラベルを返します。
func (i Issue) AssigneeLabel() string {
	if i.Assignee == nil {
		return UnassignedLabel
	}
	return *i.Assignee
}

// IssueSet は1回の取得で得られた課題の一覧です。
// len(Issues) == Total が常に成り立ちます。
type IssueSet struct {
	Total  int
	Issues []Issue
}
