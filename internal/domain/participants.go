package domain

import "github.com/google/uuid"

// Records owned by the tournament, draw and participant subsystems. This
// service only reads them, to resolve feedback sources and validate panel
// membership.

// FeedbackFromTeams is the tournament preference controlling how team
// feedback is collected.
type FeedbackFromTeams string

const (
	// FeedbackFromTeamsAllAdjs collects one submission per adjudicator.
	FeedbackFromTeamsAllAdjs FeedbackFromTeams = "all-adjs"
	// FeedbackFromTeamsOrallist collects a single oral-adjudicator list per
	// room; resubmission supersedes the team's previous feedback regardless
	// of which adjudicator it targeted.
	FeedbackFromTeamsOrallist FeedbackFromTeams = "orallist"
)

type Tournament struct {
	ID                uuid.UUID
	Slug              string
	Name              string
	FeedbackFromTeams FeedbackFromTeams
}

type Round struct {
	ID             uuid.UUID
	TournamentID   uuid.UUID
	Seq            int
	Name           string
	FeedbackWeight float64
}

type Adjudicator struct {
	ID        uuid.UUID
	Name      string
	BaseScore float64
}

type Team struct {
	ID        uuid.UUID
	ShortName string
}

type Debate struct {
	ID      uuid.UUID
	RoundID uuid.UUID
}

// DebateAdjudicatorType is the seat an adjudicator held in a debate.
type DebateAdjudicatorType string

const (
	DebateAdjudicatorChair     DebateAdjudicatorType = "C"
	DebateAdjudicatorPanellist DebateAdjudicatorType = "P"
	DebateAdjudicatorTrainee   DebateAdjudicatorType = "T"
)

// DebateAdjudicator is an adjudicator's seat in one debate.
type DebateAdjudicator struct {
	ID            uuid.UUID
	DebateID      uuid.UUID
	AdjudicatorID uuid.UUID
	Type          DebateAdjudicatorType
}

// DebateTeam is a team's slot in one debate.
type DebateTeam struct {
	ID       uuid.UUID
	DebateID uuid.UUID
	TeamID   uuid.UUID
	Side     string
}
