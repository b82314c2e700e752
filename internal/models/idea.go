// internal/models/idea.go
package models

import "strings"

type Stage string

const (
	StageConcept Stage = "concept"
	StageMVP     Stage = "mvp"
	StageEarly   Stage = "early"
	StageGrowth  Stage = "growth"
)

func (s Stage) IsValid() bool {
	switch s {
	case StageConcept, StageMVP, StageEarly, StageGrowth:
		return true
	}
	return false
}

func ParseStage(s string) Stage {
	return Stage(strings.ToLower(strings.TrimSpace(s)))
}

type IdeaStatus string

const (
	IdeaStatusDraft     IdeaStatus = "draft"
	IdeaStatusPublished IdeaStatus = "published"
	IdeaStatusFunded    IdeaStatus = "funded"
	IdeaStatusCancelled IdeaStatus = "cancelled"
)

type BusinessIdea struct {
	ID             string     `json:"id"`
	CreatorID      string     `json:"creatorId"`
	Title          string     `json:"title,omitempty"`
	Category       string     `json:"category"`
	Tags           []string   `json:"tags,omitempty"`
	FundingGoal    float64    `json:"fundingGoal"`
	CurrentFunding float64    `json:"currentFunding"`
	EquityOffered  float64    `json:"equityOffered"`
	Stage          Stage      `json:"stage"`
	Status         IdeaStatus `json:"status"`
}

// IsPublished reports whether the idea participates in matching.
func (i BusinessIdea) IsPublished() bool {
	return IdeaStatus(strings.ToLower(string(i.Status))) == IdeaStatusPublished
}
