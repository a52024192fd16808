package client

import "time"

type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type Subject struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	UserID uint   `json:"userId"`
}

type Score struct {
	ID             uint      `json:"id"`
	Value          float64   `json:"value"`
	AssignmentName string    `json:"assignmentName"`
	Date           time.Time `json:"date"`
	SubjectID      uint      `json:"subjectId"`
	UserID         uint      `json:"userId"`
	Subject        Subject   `json:"subject"`
}

type Goal struct {
	ID            uint       `json:"id"`
	Description   string     `json:"description"`
	TargetScore   float64    `json:"targetScore"`
	Deadline      time.Time  `json:"deadline"`
	UserID        uint       `json:"userId"`
	Status        string     `json:"status"`
	AchievedScore *float64   `json:"achievedScore"`
	EvaluatedAt   *time.Time `json:"evaluatedAt,omitempty"`
}

type SubjectAverage struct {
	SubjectID uint    `json:"subjectId"`
	Name      string  `json:"name"`
	Average   float64 `json:"average"`
	Count     int     `json:"count"`
}

type TrendPoint struct {
	ScoreID        uint      `json:"scoreId"`
	AssignmentName string    `json:"assignmentName"`
	Value          float64   `json:"value"`
	Date           time.Time `json:"date"`
}

type Analytics struct {
	OverallAverage *float64              `json:"overallAverage"`
	Averages       []SubjectAverage      `json:"averages"`
	Trends         map[uint][]TrendPoint `json:"trends"`
}

// NewScore is the body of a score creation. Value and SubjectID travel as JSON numbers.
type NewScore struct {
	Value          float64 `json:"value"`
	AssignmentName string  `json:"assignmentName"`
	Date           string  `json:"date"`
	SubjectID      uint    `json:"subjectId"`
}

type NewGoal struct {
	Description string  `json:"description"`
	TargetScore float64 `json:"targetScore"`
	Deadline    string  `json:"deadline"`
}
