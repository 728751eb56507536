package model

import "fmt"

// IssueStatus 工作流状态
type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "open"
	IssueStatusInProgress IssueStatus = "in_progress"
	IssueStatusResolved   IssueStatus = "resolved"
	IssueStatusClosed     IssueStatus = "closed"
)

// IssueStatuses 按工作流顺序排列
var IssueStatuses = []IssueStatus{IssueStatusOpen, IssueStatusInProgress, IssueStatusResolved, IssueStatusClosed}

// Rank 工作流序号，open=1 ... closed=4，非法值为0
func (s IssueStatus) Rank() int {
	for i, v := range IssueStatuses {
		if v == s {
			return i + 1
		}
	}
	return 0
}

func (s IssueStatus) Valid() bool {
	return s.Rank() > 0
}

// ParseIssueStatus 解析状态
func ParseIssueStatus(s string) (IssueStatus, error) {
	v := IssueStatus(s)
	if !v.Valid() {
		return "", fmt.Errorf("invalid status %q", s)
	}
	return v, nil
}

// IssuePriority 优先级
type IssuePriority string

const (
	IssuePriorityLow      IssuePriority = "low"
	IssuePriorityMedium   IssuePriority = "medium"
	IssuePriorityHigh     IssuePriority = "high"
	IssuePriorityCritical IssuePriority = "critical"
)

// IssuePriorities 按严重程度排列
var IssuePriorities = []IssuePriority{IssuePriorityLow, IssuePriorityMedium, IssuePriorityHigh, IssuePriorityCritical}

// Rank 严重程度序号，low=1 ... critical=4，非法值为0
func (p IssuePriority) Rank() int {
	for i, v := range IssuePriorities {
		if v == p {
			return i + 1
		}
	}
	return 0
}

func (p IssuePriority) Valid() bool {
	return p.Rank() > 0
}

// ParseIssuePriority 解析优先级
func ParseIssuePriority(s string) (IssuePriority, error) {
	v := IssuePriority(s)
	if !v.Valid() {
		return "", fmt.Errorf("invalid priority %q", s)
	}
	return v, nil
}
