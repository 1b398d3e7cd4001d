package feedback

import "uplift-backend/internal/models"

type UserFeedbacks struct {
	Given    []models.FeedbackItem `json:"given"`
	Received []models.FeedbackItem `json:"received"`
}

type UserStats struct {
	ConsiderGiven    int `json:"considerGiven"`
	ConsiderReceived int `json:"considerReceived"`
	ContinueGiven    int `json:"continueGiven"`
	ContinueReceived int `json:"continueReceived"`
	EngagementScore  int `json:"engagementScore"`
}

type MemberStat struct {
	Given    int `json:"given"`
	Received int `json:"received"`
}

// TeamStats counts consider items as feedbacks and continue items as
// appreciations, matching the dashboard terminology.
type TeamStats struct {
	TotalFeedbacks     int                   `json:"totalFeedbacks"`
	TotalAppreciations int                   `json:"totalAppreciations"`
	EngagementScore    int                   `json:"engagementScore"`
	MemberStats        map[string]MemberStat `json:"memberStats"`
}

type DepartmentStat struct {
	Feedbacks     int `json:"feedbacks"`
	Appreciations int `json:"appreciations"`
	Engagement    int `json:"engagement"`
}

type OrganizationStats struct {
	TotalFeedbacks     int                       `json:"totalFeedbacks"`
	TotalAppreciations int                       `json:"totalAppreciations"`
	AverageEngagement  int                       `json:"averageEngagement"`
	DepartmentStats    map[string]DepartmentStat `json:"departmentStats"`
}
