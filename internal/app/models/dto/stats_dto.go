package dto

import "time"

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	TotalStudents   int     `json:"totalStudents"`
	TotalProfessors int     `json:"totalProfessors"`
	ActiveCourses   int     `json:"activeCourses"`
	AverageGrade    float64 `json:"averageGpa"`
	TotalGrades     int     `json:"totalGrades"`
	PendingExams    int     `json:"pendingExamRegistrations"`
}

// Activity is one entry of the recent activity feed
type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
